package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
	"github.com/yamkelajack06/Study-Flow/internal/timetable"
)

// emptyEntry is the base of a new entry.
var emptyEntry entry.Entry

// scheduleFlags are shared by add and edit.
var scheduleFlags = []StringFlag{
	{Name: "when", Shorthand: "w", Usage: `natural schedule, e.g. "from 9am to 10am every monday"`},
	{Name: "date", Usage: "date of a one-time entry (YYYY-MM-DD, today, next friday, ...)"},
	{Name: "day", Usage: "weekday of a recurring entry"},
	{Name: "recurrence", Usage: "weekly, biweekly or monthly"},
	{Name: "start", Usage: `start time, e.g. "9:00 AM"`},
	{Name: "end", Usage: `end time, e.g. "10:00 AM"`},
	{Name: "category", Shorthand: "c", Usage: "category name"},
	{Name: "color", Usage: "display color, defaults to the category color"},
	{Name: "notes", Shorthand: "n", Usage: "notes, up to 100 characters"},
}

type scheduleOptions struct {
	Subject    string
	When       string
	Date       string
	Day        string
	Recurrence string
	Start      string
	End        string
	Category   string
	Color      string
	Notes      string
}

func readScheduleOptions(cmd *cobra.Command) scheduleOptions {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return strings.TrimSpace(v)
	}
	return scheduleOptions{
		Subject:    get("subject"),
		When:       get("when"),
		Date:       get("date"),
		Day:        get("day"),
		Recurrence: get("recurrence"),
		Start:      get("start"),
		End:        get("end"),
		Category:   get("category"),
		Color:      get("color"),
		Notes:      get("notes"),
	}
}

// buildEntry applies o on top of base. A zero base means a new entry, which
// must end up with a day or a date.
func buildEntry(base entry.Entry, o scheduleOptions, now time.Time) (entry.Entry, error) {
	e := base.Clone()
	if o.Subject != "" {
		e.Subject = o.Subject
	}

	if o.When != "" {
		s, err := schedule.ParseScheduleWithNow(o.When, now)
		if err != nil {
			return entry.Entry{}, err
		}
		e.StartTime, e.EndTime = s.From.Label(), s.To.Label()
		switch {
		case s.Date != nil:
			setDate(&e, *s.Date)
		case s.Weekday != nil:
			setWeekly(&e, *s.Weekday, s.Recurrence)
		}
	}

	if o.Date != "" {
		d, err := schedule.ParseDateWithNow(o.Date, now)
		if err != nil {
			return entry.Entry{}, err
		}
		setDate(&e, *d)
	}

	if o.Day != "" || o.Recurrence != "" {
		if o.Day == "" && e.Recurring == nil {
			return entry.Entry{}, fmt.Errorf("--recurrence needs --day for a one-time entry")
		}
		day := time.Weekday(0)
		if e.Recurring != nil {
			day = e.Recurring.Day
		}
		if o.Day != "" {
			wd, ok := schedule.ParseWeekday(o.Day)
			if !ok {
				return entry.Entry{}, fmt.Errorf("unrecognized weekday %q", o.Day)
			}
			day = wd
		}
		rec := e.Recurrence()
		if o.Recurrence != "" {
			r, err := schedule.ParseRecurrence(o.Recurrence)
			if err != nil {
				return entry.Entry{}, err
			}
			rec = r
		}
		setWeekly(&e, day, rec)
	}

	if o.Start != "" {
		e.StartTime = o.Start
	}
	if o.End != "" {
		e.EndTime = o.End
	}
	if o.Category != "" {
		e.Category = o.Category
		if o.Color == "" && !strings.EqualFold(o.Category, base.Category) {
			e.Color = ""
		}
	}
	if o.Color != "" {
		e.Color = o.Color
	}
	if o.Notes != "" {
		e.Notes = o.Notes
	}

	if e.Once == nil && e.Recurring == nil {
		return entry.Entry{}, fmt.Errorf(`give a day or a date, e.g. --when "from 9am to 10am every monday" or --date tomorrow`)
	}
	if e.StartTime == "" || e.EndTime == "" {
		return entry.Entry{}, fmt.Errorf("a start and an end time are required")
	}
	return e, nil
}

func setDate(e *entry.Entry, d time.Time) {
	e.Once = &entry.OneTime{Date: schedule.CivilDate(d)}
	e.Recurring = nil
}

func setWeekly(e *entry.Entry, day time.Weekday, r schedule.Recurrence) {
	if r == "" {
		r = schedule.Weekly
	}
	e.Recurring = &entry.Weekly{Day: day, Recurrence: r}
	e.Once = nil
}

// describe is the one-line summary printed for an entry.
func describe(e entry.Entry) string {
	return fmt.Sprintf("%s  %s  %s",
		Swatch(e.Color, Bold(e.Subject)),
		entry.Describe(e),
		schedule.FormatTimeRange(e.StartTime, e.EndTime))
}

// noteOffGrid tells the user when a start time misses the hourly rows of
// the week view.
func noteOffGrid(w io.Writer, e entry.Entry) {
	if schedule.OnGrid(e.StartTime) {
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s is not on the hourly grid, the week view shows it in the row it falls in or below the grid\n",
		Warning("note"), e.StartTime)
}

// reportConflict names the entry that blocked a rejected add or edit.
func reportConflict(w io.Writer, err error) {
	with, ok := timetable.ConflictingEntry(err)
	if !ok {
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s %s\n", Warning("conflicts with"), describe(with), Silent(with.Handle()))
}
