package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage layout for calendar dates.
const DateLayout = "2006-01-02"

// ParseDateWithNow parses a date expression relative to now.
func ParseDateWithNow(s string, now time.Time) (*time.Time, error) {
	return parseDate(s, now)
}

// parseDate parses a date expression relative to now.
// Supports: "today", "tomorrow", "monday", "next tuesday", "on Monday",
// "2024-01-15", "Jan 2", "Jan 2 2006", "January 2", "January 2 2006",
// "2 Jan", "2 Jan 2006", "2 January", "2 January 2006".
func parseDate(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	// Strip "on " prefix
	s = strings.TrimPrefix(s, "on ")
	s = strings.TrimSpace(s)

	// Relative dates
	switch s {
	case "today":
		d := truncateToDay(now)
		return &d, nil
	case "tomorrow":
		d := truncateToDay(now).AddDate(0, 0, 1)
		return &d, nil
	}

	// Weekday names (with optional "next " prefix)
	cleaned := strings.TrimPrefix(s, "next ")
	if wd, ok := ParseWeekday(cleaned); ok {
		d := nextWeekday(now, wd)
		return &d, nil
	}

	// Absolute date formats
	layouts := []string{
		DateLayout,
		"jan 2",
		"jan 2 2006",
		"january 2",
		"january 2 2006",
		"2 jan",
		"2 jan 2006",
		"2 january",
		"2 january 2006",
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			// For layouts without a year, use the current year
			if !hasYear(layout) {
				t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
			}
			return &t, nil
		}
	}

	return nil, fmt.Errorf("unrecognized date %q", s)
}

// ParseCalendarDate parses a stored calendar date. It accepts "2006-01-02"
// and full RFC 3339 timestamps, keeping only the year/month/day part.
func ParseCalendarDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// CivilDate drops the clock and location from t, returning midnight UTC of
// the same calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
	// Older timetables were saved with this misspelling.
	"thurday": time.Thursday,
}

// ParseWeekday parses a weekday name or three-letter abbreviation.
func ParseWeekday(s string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return wd, ok
}

// nextWeekday returns the next occurrence of the given weekday after now.
// If now is that weekday, it returns the following week.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	today := truncateToDay(now)
	daysAhead := int(wd) - int(today.Weekday())
	if daysAhead <= 0 {
		daysAhead += 7
	}
	return today.AddDate(0, 0, daysAhead)
}

func hasYear(layout string) bool {
	return strings.Contains(layout, "2006")
}

// ISOWeek returns the ISO 8601 week number of date.
func ISOWeek(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}

// WeekdayOccurrence returns which occurrence of its weekday date is within
// its month: 1 for the first Monday, 2 for the second, and so on.
func WeekdayOccurrence(date time.Time) int {
	return (date.Day()-1)/7 + 1
}

// WeekDates returns the seven dates of the Monday-based week containing date.
func WeekDates(date time.Time) []time.Time {
	day := truncateToDay(date)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)

	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// MonthDates returns every date of the month containing date.
func MonthDates(date time.Time) []time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1)

	dates := make([]time.Time, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
