package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Recurrence is the repetition rule of a recurring timetable entry.
type Recurrence string

const (
	Weekly   Recurrence = "weekly"
	Biweekly Recurrence = "biweekly"
	Monthly  Recurrence = "monthly"
)

// Valid reports whether r is one of the known recurrence patterns.
func (r Recurrence) Valid() bool {
	switch r {
	case Weekly, Biweekly, Monthly:
		return true
	}
	return false
}

var everyTwoWeeks = regexp.MustCompile(`^every (2|two) weeks?$`)

// ParseRecurrence parses a recurrence keyword or natural phrase. An empty
// string means weekly.
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	switch s {
	case "", "weekly", "every week":
		return Weekly, nil
	case "biweekly", "fortnightly", "every other week", "every second week":
		return Biweekly, nil
	case "monthly", "every month":
		return Monthly, nil
	}

	if everyTwoWeeks.MatchString(s) {
		return Biweekly, nil
	}

	return "", fmt.Errorf("unrecognized recurrence %q", s)
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// evenISOWeeks lists the ISO weeks on which a biweekly entry occurs.
// Week 53 is odd so it never appears.
var evenISOWeeks = func() []int {
	weeks := make([]int, 0, 26)
	for w := 2; w <= 52; w += 2 {
		weeks = append(weeks, w)
	}
	return weeks
}()

// RuleOption returns the rrule options describing a recurring entry on wd.
// Biweekly entries follow even ISO week numbers, not an anchor date, and
// monthly entries fall on the first wd of each month.
func RuleOption(wd time.Weekday, r Recurrence) (rrule.ROption, error) {
	day := rruleWeekdays[wd]

	switch r {
	case Weekly, "":
		return rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{day},
		}, nil
	case Biweekly:
		return rrule.ROption{
			Freq:      rrule.YEARLY,
			Byweekno:  evenISOWeeks,
			Byweekday: []rrule.Weekday{day},
		}, nil
	case Monthly:
		return rrule.ROption{
			Freq:      rrule.MONTHLY,
			Byweekday: []rrule.Weekday{day.Nth(1)},
		}, nil
	}
	return rrule.ROption{}, fmt.Errorf("unrecognized recurrence %q", r)
}

// Rule builds the recurrence rule for a recurring entry starting at dtstart.
func Rule(wd time.Weekday, r Recurrence, dtstart time.Time) (*rrule.RRule, error) {
	opt, err := RuleOption(wd, r)
	if err != nil {
		return nil, err
	}
	opt.Dtstart = dtstart
	return rrule.NewRRule(opt)
}

// OnceRule builds a rule that yields date exactly once.
func OnceRule(date time.Time) (*rrule.RRule, error) {
	return rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Count:   1,
		Dtstart: date,
	})
}

// Occurrences returns the dates produced by r between from and to, inclusive.
func Occurrences(r *rrule.RRule, from, to time.Time) []time.Time {
	return r.Between(from, to, true)
}
