package entry

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

// Occurrence is an entry placed on a concrete calendar date.
type Occurrence struct {
	Entry Entry
	Date  time.Time
}

// Rule returns the recurrence rule of e. One-time entries yield a rule with
// a single occurrence on their date.
func Rule(e Entry, dtstart time.Time) (*rrule.RRule, error) {
	if e.Once != nil {
		return schedule.OnceRule(e.Once.Date)
	}
	if e.Recurring == nil {
		return nil, fmt.Errorf("%w: entry %q has no schedule", ErrInvalid, e.ID)
	}
	return schedule.Rule(e.Recurring.Day, e.Recurring.Recurrence, dtstart)
}

// RRule returns the RFC 5545 RRULE value for a recurring entry, or "" for a
// one-time entry.
func RRule(e Entry) (string, error) {
	if e.Recurring == nil {
		return "", nil
	}
	opt, err := schedule.RuleOption(e.Recurring.Day, e.Recurring.Recurrence)
	if err != nil {
		return "", err
	}
	return opt.RRuleString(), nil
}

// Expand projects entries onto every date between from and to, inclusive.
// Recurring entries take their weekly candidates from rrule and keep the
// ones OccursOn accepts, so a range always agrees with OccursOn day by day.
// Occurrences are ordered by date, then start time, then collection order.
func Expand(entries []Entry, from, to time.Time) ([]Occurrence, error) {
	from, to = schedule.CivilDate(from), schedule.CivilDate(to)
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s is before start %s",
			to.Format(schedule.DateLayout), from.Format(schedule.DateLayout))
	}

	var out []Occurrence
	for _, e := range entries {
		r, err := candidateRule(e, from)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", e.ID, err)
		}
		for _, d := range schedule.Occurrences(r, from, to) {
			if OccursOn(e, d) {
				out = append(out, Occurrence{Entry: e, Date: d})
			}
		}
	}

	slices.SortStableFunc(out, func(a, b Occurrence) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(startMinutes(a.Entry), startMinutes(b.Entry))
	})
	return out, nil
}

// candidateRule is Rule widened to every week for recurring entries.
func candidateRule(e Entry, dtstart time.Time) (*rrule.RRule, error) {
	if e.Recurring == nil {
		return Rule(e, dtstart)
	}
	if !e.Recurring.Recurrence.Valid() {
		return nil, fmt.Errorf("%w: unknown recurrence %q", ErrInvalid, e.Recurring.Recurrence)
	}
	return schedule.Rule(e.Recurring.Day, schedule.Weekly, dtstart)
}

func startMinutes(e Entry) int {
	m, err := schedule.ToMinutes(e.StartTime)
	if err != nil {
		return -1
	}
	return m
}

// Describe returns a human-readable schedule for e, e.g. "Every other
// Monday" or "Monday, March 10, 2025".
func Describe(e Entry) string {
	switch {
	case e.Once != nil:
		return schedule.DescribeDate(e.Once.Date)
	case e.Recurring != nil:
		return schedule.DescribeRecurrence(e.Recurring.Day, e.Recurring.Recurrence)
	}
	return ""
}
