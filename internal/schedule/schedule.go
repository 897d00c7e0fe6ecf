package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Schedule is the result of parsing a natural language schedule string.
// Date and Weekday are mutually exclusive.
type Schedule struct {
	From       TimeOfDay     // always required
	To         TimeOfDay     // always required
	Date       *time.Time    // one-time date (nil if recurring or bare time range)
	Weekday    *time.Weekday // recurring weekday (nil if one-time)
	Recurrence Recurrence    // set when Weekday is set
}

var (
	everyOtherDay = regexp.MustCompile(`^(?:every (?:other|second)|biweekly on|fortnightly on) (\w+)$`)
	monthlyDay    = regexp.MustCompile(`^(?:(?:every month|monthly) on (\w+?)s?|first (\w+) of (?:the|every) month)$`)
	everyDay      = regexp.MustCompile(`^(?:every|weekly on) (\w+)$`)
)

// ParseScheduleWithNow parses a natural language schedule string of the form
// "from <time> to <time> [date|recurrence]". now resolves relative dates
// (today, tomorrow, next monday, etc.).
func ParseScheduleWithNow(input string, now time.Time) (Schedule, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))

	fromTime, toTime, remainder, err := extractTimes(normalized)
	if err != nil {
		return Schedule{}, err
	}

	schedule := Schedule{
		From: fromTime,
		To:   toTime,
	}

	remainder = strings.TrimSpace(remainder)
	if remainder == "" {
		return schedule, nil
	}

	if isNaturalRecurrence(remainder) {
		wd, r, err := parseWeekdayRecurrence(remainder)
		if err != nil {
			return Schedule{}, fmt.Errorf("invalid recurrence: %w", err)
		}
		schedule.Weekday = &wd
		schedule.Recurrence = r
		return schedule, nil
	}

	d, err := parseDate(remainder, now)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid date: %w", err)
	}
	schedule.Date = d
	return schedule, nil
}

// extractTimes parses "from <time> to <time> ..." and returns the two times
// plus the remaining string after the "to <time>" segment.
func extractTimes(s string) (TimeOfDay, TimeOfDay, string, error) {
	if !strings.HasPrefix(s, "from ") {
		return TimeOfDay{}, TimeOfDay{}, "", fmt.Errorf("expected 'from <time> to <time>', got %q", s)
	}

	afterFrom := s[len("from "):]

	toIdx := findToKeyword(afterFrom)
	if toIdx == -1 {
		return TimeOfDay{}, TimeOfDay{}, "", fmt.Errorf("expected 'to <time>' in %q", s)
	}

	fromStr := strings.TrimSpace(afterFrom[:toIdx])
	afterTo := strings.TrimSpace(afterFrom[toIdx+len("to "):])

	fromTime, err := parseTimeOfDay(fromStr)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, "", fmt.Errorf("invalid start time %q: %w", fromStr, err)
	}

	toStr, remainder := splitTimeAndRemainder(afterTo)

	toTime, err := parseTimeOfDay(toStr)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, "", fmt.Errorf("invalid end time %q: %w", toStr, err)
	}

	return fromTime, toTime, remainder, nil
}

// findToKeyword finds the index of " to " as a word boundary in s.
// Returns -1 if not found. The returned index points at "to " (past the leading space).
func findToKeyword(s string) int {
	pos := strings.Index(s, " to ")
	if pos == -1 {
		return -1
	}
	return pos + 1
}

// splitTimeAndRemainder splits "5pm every monday" into ("5pm", "every monday").
// A detached "am"/"pm" token ("5 pm every monday") stays with the time.
func splitTimeAndRemainder(s string) (string, string) {
	parts := strings.SplitN(s, " ", 3)
	switch {
	case len(parts) == 1:
		return parts[0], ""
	case parts[1] == "am" || parts[1] == "pm":
		if len(parts) == 2 {
			return parts[0] + parts[1], ""
		}
		return parts[0] + parts[1], parts[2]
	case len(parts) == 2:
		return parts[0], parts[1]
	}
	return parts[0], parts[1] + " " + parts[2]
}

// isNaturalRecurrence returns true if the string starts with recurrence keywords.
func isNaturalRecurrence(s string) bool {
	return strings.HasPrefix(s, "every ") ||
		strings.HasPrefix(s, "weekly ") ||
		strings.HasPrefix(s, "biweekly ") ||
		strings.HasPrefix(s, "fortnightly ") ||
		strings.HasPrefix(s, "monthly ") ||
		(strings.HasPrefix(s, "first ") && strings.HasSuffix(s, " month"))
}

func parseWeekdayRecurrence(s string) (time.Weekday, Recurrence, error) {
	if m := everyOtherDay.FindStringSubmatch(s); m != nil {
		return weekdayFor(m[1], Biweekly, s)
	}
	if m := monthlyDay.FindStringSubmatch(s); m != nil {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		return weekdayFor(name, Monthly, s)
	}
	if m := everyDay.FindStringSubmatch(s); m != nil {
		return weekdayFor(m[1], Weekly, s)
	}
	return 0, "", fmt.Errorf("unrecognized recurrence %q", s)
}

func weekdayFor(name string, r Recurrence, s string) (time.Weekday, Recurrence, error) {
	wd, ok := ParseWeekday(name)
	if !ok {
		return 0, "", fmt.Errorf("unrecognized weekday in %q", s)
	}
	return wd, r, nil
}
