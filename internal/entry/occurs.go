package entry

import (
	"time"

	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

// OccursOn reports whether e takes place on the calendar day of date.
//
// One-time entries match their date exactly. Recurring entries match on
// weekday, with biweekly entries limited to even ISO weeks and monthly
// entries to the first such weekday of the month. Biweekly parity follows
// the calendar, not the day the entry was created, so it can shift across
// a year with 53 ISO weeks.
func OccursOn(e Entry, date time.Time) bool {
	if e.Once != nil {
		return schedule.SameDay(e.Once.Date, date)
	}
	if e.Recurring == nil || date.Weekday() != e.Recurring.Day {
		return false
	}

	switch e.Recurring.Recurrence {
	case schedule.Biweekly:
		return schedule.ISOWeek(date)%2 == 0
	case schedule.Monthly:
		return schedule.WeekdayOccurrence(date) == 1
	}
	return true
}

// OccurringOn returns the entries of all that take place on date, in
// collection order.
func OccurringOn(all []Entry, date time.Time) []Entry {
	var out []Entry
	for _, e := range all {
		if OccursOn(e, date) {
			out = append(out, e)
		}
	}
	return out
}
