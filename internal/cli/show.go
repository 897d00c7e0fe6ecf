package cli

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

const (
	timeColWidth = 9
	dayColWidth  = 14
)

var showCmd = LeafCommand{
	Use:   "show",
	Short: "Show the timetable for a day, week or month",
	Example: `  studyflow show
  studyflow show --view day --date tomorrow
  studyflow show --view month --date 2025-03-01`,
	Args: cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "date", Shorthand: "d", Usage: "date to show (defaults to today)"},
		{Name: "view", Usage: "day, week or month", Default: "week"},
	},
	BoolFlags: []BoolFlag{
		{Name: "plain", Usage: "print a static table even on a terminal"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dateFlag, _ := cmd.Flags().GetString("date")
		view, _ := cmd.Flags().GetString("view")
		plain, _ := cmd.Flags().GetBool("plain")
		return withApp(cmd, PromptKit{}, func(a *app) error {
			return runShow(cmd, a, dateFlag, view, plain)
		})
	},
}.Build()

func runShow(cmd *cobra.Command, a *app, dateFlag, view string, plain bool) error {
	date := schedule.CivilDate(a.store.Now())
	if dateFlag != "" {
		d, err := schedule.ParseDateWithNow(dateFlag, a.store.Now())
		if err != nil {
			return err
		}
		date = schedule.CivilDate(*d)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(view) {
	case "day":
		_, err := io.WriteString(out, renderDay(date, a.store.EntriesForDate(date)))
		return err
	case "week":
		if f, ok := out.(*os.File); ok && !plain && isatty.IsTerminal(f.Fd()) {
			return runWeekBrowser(out, a.store, date)
		}
		occ, err := a.store.EntriesForWeek(date)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, renderWeek(schedule.WeekDates(date), occ))
		return err
	case "month":
		occ, err := a.store.EntriesForMonth(date)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, renderMonth(date, occ))
		return err
	}
	return fmt.Errorf("unknown view %q (valid: day, week, month)", view)
}

func renderDay(date time.Time, entries []entry.Entry) string {
	var b strings.Builder
	b.WriteString(Bold(schedule.DescribeDate(date)) + "\n")
	if len(entries) == 0 {
		b.WriteString(Silent("  nothing scheduled") + "\n")
		return b.String()
	}

	entries = slices.Clone(entries)
	slices.SortStableFunc(entries, func(x, y entry.Entry) int {
		return cmp.Compare(minutesOf(x.StartTime), minutesOf(y.StartTime))
	})
	for _, e := range entries {
		fmt.Fprintf(&b, "  %-19s  %s", schedule.FormatTimeRange(e.StartTime, e.EndTime), Swatch(e.Color, e.Subject))
		if e.Category != "" {
			b.WriteString(" " + Silent("["+e.Category+"]"))
		}
		if e.Notes != "" {
			b.WriteString("  " + Silent(e.Notes))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderWeek draws the hourly grid for days. An entry is shown in the slot
// its start time falls into; entries starting outside the grid are listed
// underneath.
func renderWeek(days []time.Time, occ []entry.Occurrence) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", timeColWidth))
	for _, d := range days {
		b.WriteString(" | " + Bold(fmt.Sprintf("%-*s", dayColWidth, schedule.FormatDayHeading(d))))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", timeColWidth+len(days)*(dayColWidth+3)) + "\n")

	placed := make(map[int]bool)
	for _, slot := range schedule.GridSlots() {
		fmt.Fprintf(&b, "%*s", timeColWidth, slot.Start.Label())
		for _, d := range days {
			var names []string
			color := ""
			for i, o := range occ {
				if !schedule.SameDay(o.Date, d) || !inSlot(o.Entry.StartTime, slot) {
					continue
				}
				placed[i] = true
				names = append(names, o.Entry.Subject)
				if color == "" {
					color = o.Entry.Color
				}
			}
			cell := fmt.Sprintf("%-*s", dayColWidth, truncate(strings.Join(names, ", "), dayColWidth))
			b.WriteString(" | " + Swatch(color, cell))
		}
		b.WriteString("\n")
	}

	var outside []string
	for i, o := range occ {
		if !placed[i] {
			outside = append(outside, fmt.Sprintf("  %s  %s  %s",
				schedule.FormatDayHeading(o.Date), schedule.FormatTimeRange(o.Entry.StartTime, o.Entry.EndTime), o.Entry.Subject))
		}
	}
	if len(outside) > 0 {
		b.WriteString(Silent("outside the grid:") + "\n")
		b.WriteString(strings.Join(outside, "\n") + "\n")
	}
	return b.String()
}

func renderMonth(date time.Time, occ []entry.Occurrence) string {
	var b strings.Builder
	b.WriteString(Bold(date.Format("January 2006")) + "\n")
	if len(occ) == 0 {
		b.WriteString(Silent("  nothing scheduled") + "\n")
		return b.String()
	}

	for i := 0; i < len(occ); {
		day := occ[i].Date
		var items []string
		for ; i < len(occ) && schedule.SameDay(occ[i].Date, day); i++ {
			e := occ[i].Entry
			items = append(items, fmt.Sprintf("%s %s", Silent(e.StartTime), Swatch(e.Color, e.Subject)))
		}
		fmt.Fprintf(&b, "  %s  %s\n", Bold(schedule.FormatDayHeading(day)), strings.Join(items, ", "))
	}
	return b.String()
}

func inSlot(label string, slot schedule.Slot) bool {
	m := minutesOf(label)
	start := slot.Start.Minutes()
	end := slot.End.Minutes()
	if end == 0 {
		end = 24 * 60
	}
	return m >= start && m < end
}

func minutesOf(label string) int {
	m, err := schedule.ToMinutes(label)
	if err != nil {
		return -1
	}
	return m
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
