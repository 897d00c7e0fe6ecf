package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrFormat is returned when a time label cannot be parsed.
	ErrFormat = errors.New("invalid time format")
	// ErrInvalidOrder is returned when an end time does not come after its start time.
	ErrInvalidOrder = errors.New("end time must be after start time")
)

var (
	// 9:30am, 9:30pm, 9:30 AM
	timeColonAMPM = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm)$`)
	// 9.30am, 9.30pm
	timeDotAMPM = regexp.MustCompile(`^(\d{1,2})\.(\d{2})\s*(am|pm)$`)
	// 9am, 2pm
	timeAMPM = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)
	// 14:00, 09:30
	time24h = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	// 14.00, 09.30
	timeDot24h = regexp.MustCompile(`^(\d{1,2})\.(\d{2})$`)
)

// TimeOfDay represents a clock time without a date component.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// String returns TimeOfDay in "HH:MM" format.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Label returns TimeOfDay as a timetable label, e.g. "9:00 AM" or "12:30 PM".
func (t TimeOfDay) Label() string {
	suffix := "AM"
	display := t.Hour
	switch {
	case t.Hour == 0:
		display = 12
	case t.Hour == 12:
		suffix = "PM"
	case t.Hour > 12:
		display = t.Hour - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, t.Minute, suffix)
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// ParseTimeOfDay parses a time string into a TimeOfDay.
// Supported formats: "9:30 AM", "9:30am", "9.30am", "9am", "14:00", "14.00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	return parseTimeOfDay(s)
}

// parseTimeOfDay parses a time string into a TimeOfDay.
func parseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if m := timeColonAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], m[2], m[3])
	}

	if m := timeDotAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], m[2], m[3])
	}

	if m := timeAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], "0", m[2])
	}

	if m := time24h.FindStringSubmatch(s); m != nil {
		return parseHourMinute24(m[1], m[2])
	}

	if m := timeDot24h.FindStringSubmatch(s); m != nil {
		return parseHourMinute24(m[1], m[2])
	}

	return TimeOfDay{}, fmt.Errorf("%w: unrecognized time %q", ErrFormat, s)
}

func parseHourMinuteAMPM(hourStr, minStr, ampm string) (TimeOfDay, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	if hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("%w: hour %d out of range for 12-hour format", ErrFormat, hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: minute %d out of range", ErrFormat, minute)
	}

	if ampm == "am" {
		if hour == 12 {
			hour = 0
		}
	} else {
		if hour != 12 {
			hour += 12
		}
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func parseHourMinute24(hourStr, minStr string) (TimeOfDay, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: hour %d out of range", ErrFormat, hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: minute %d out of range", ErrFormat, minute)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ToMinutes converts a time label such as "9:00 AM" into minutes since midnight.
func ToMinutes(label string) (int, error) {
	t, err := parseTimeOfDay(label)
	if err != nil {
		return 0, err
	}
	return t.Minutes(), nil
}

// NormalizeLabel parses any supported time string and returns its canonical
// "H:MM AM" label.
func NormalizeLabel(s string) (string, error) {
	t, err := parseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return t.Label(), nil
}

// IntervalsOverlap reports whether [startA, endA) and [startB, endB) overlap.
// Intervals that only touch at an endpoint do not overlap.
func IntervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// ValidateOrder checks that end comes strictly after start.
func ValidateOrder(start, end string) error {
	s, err := ToMinutes(start)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	e, err := ToMinutes(end)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	if e <= s {
		return ErrInvalidOrder
	}
	return nil
}
