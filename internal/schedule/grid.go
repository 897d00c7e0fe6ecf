package schedule

const (
	firstGridHour = 6
	lastGridHour  = 23
)

// Slot is one hourly row of the timetable grid.
type Slot struct {
	Start TimeOfDay
	End   TimeOfDay
}

// GridSlots returns the hourly rows shown by the timetable, 6:00 AM through
// 11:00 PM (18 slots). The last slot ends at midnight.
func GridSlots() []Slot {
	slots := make([]Slot, 0, lastGridHour-firstGridHour+1)
	for h := firstGridHour; h <= lastGridHour; h++ {
		slots = append(slots, Slot{
			Start: TimeOfDay{Hour: h},
			End:   TimeOfDay{Hour: (h + 1) % 24},
		})
	}
	return slots
}

// OnGrid reports whether label falls exactly on an hourly grid boundary
// between 6:00 AM and midnight.
func OnGrid(label string) bool {
	t, err := parseTimeOfDay(label)
	if err != nil || t.Minute != 0 {
		return false
	}
	return (t.Hour >= firstGridHour && t.Hour <= lastGridHour) || t.Hour == 0
}
