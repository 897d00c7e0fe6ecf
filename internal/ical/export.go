// Package ical exports a timetable as an iCalendar feed.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

// ProductID identifies the exporter in the PRODID property.
const ProductID = "-//Study-Flow//Timetable//EN"

// Export renders entries as a calendar with one VEVENT each. Recurring
// entries start at their first occurrence on or after now and carry an
// RRULE. Wall-clock times are placed in now's location.
func Export(entries []entry.Entry, now time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName("Study-Flow timetable")

	today := schedule.CivilDate(now)
	for _, e := range entries {
		if err := addEvent(cal, e, today, now); err != nil {
			return "", fmt.Errorf("exporting %q: %w", e.ID, err)
		}
	}
	return cal.Serialize(), nil
}

func addEvent(cal *ics.Calendar, e entry.Entry, today, now time.Time) error {
	day, err := firstDay(e, today)
	if err != nil {
		return err
	}
	start, err := schedule.ParseTimeOfDay(e.StartTime)
	if err != nil {
		return err
	}
	end, err := schedule.ParseTimeOfDay(e.EndTime)
	if err != nil {
		return err
	}

	ev := cal.AddEvent(uid(e))
	ev.SetDtStampTime(now)
	ev.SetStartAt(at(day, start, now.Location()))
	ev.SetEndAt(at(day, end, now.Location()))
	ev.SetSummary(e.Subject)
	if e.Notes != "" {
		ev.SetDescription(e.Notes)
	}
	if e.Category != "" {
		ev.SetProperty(ics.ComponentPropertyCategories, e.Category)
	}
	if e.Color != "" {
		ev.SetProperty(ics.ComponentPropertyColor, e.Color)
	}

	rule, err := entry.RRule(e)
	if err != nil {
		return err
	}
	if rule != "" {
		ev.AddRrule(rule)
	}
	return nil
}

// firstDay returns the date the event starts on: the entry's own date for
// one-time entries, the first occurrence from today for recurring ones.
func firstDay(e entry.Entry, today time.Time) (time.Time, error) {
	if e.Once != nil {
		return e.Once.Date, nil
	}
	r, err := entry.Rule(e, today)
	if err != nil {
		return time.Time{}, err
	}
	next := r.After(today, true)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("entry %q never occurs", e.ID)
	}
	return next, nil
}

func at(day time.Time, t schedule.TimeOfDay, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, loc)
}

func uid(e entry.Entry) string {
	return e.Handle() + "@study-flow"
}
