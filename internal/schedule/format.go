package schedule

import (
	"fmt"
	"strings"
	"time"
)

// FormatTimeRange formats two time labels as "H:MM AM - H:MM PM". Labels
// that cannot be parsed are printed unchanged.
func FormatTimeRange(from, to string) string {
	return fmt.Sprintf("%s - %s", format12h(from), format12h(to))
}

// DescribeRecurrence returns a human-readable description of a recurring
// weekday, e.g. "Every Monday", "Every other Monday", "Monthly on Mondays".
func DescribeRecurrence(wd time.Weekday, r Recurrence) string {
	switch r {
	case Biweekly:
		return "Every other " + wd.String()
	case Monthly:
		return "Monthly on " + wd.String() + "s"
	}
	return "Every " + wd.String()
}

// DescribeDate returns a long date such as "Monday, March 10, 2025".
func DescribeDate(d time.Time) string {
	return d.Format("Monday, January 2, 2006")
}

// FormatDayHeading formats a date as a view heading, e.g. "Mon Feb  2".
func FormatDayHeading(d time.Time) string {
	return d.Format("Mon Jan _2")
}

// format12h normalizes any parseable time string to "H:MM AM/PM".
func format12h(s string) string {
	t, err := parseTimeOfDay(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return t.Label()
}
