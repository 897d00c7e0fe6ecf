package assistant

import (
	"fmt"
	"strings"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
)

// FormatState renders the timetable as the context block sent with every
// request. The id shown is the one a delete should use: the storage id when
// the entry has one, its natural id otherwise.
func FormatState(entries []entry.Entry) string {
	if len(entries) == 0 {
		return "\nCurrent timetable is empty.\n"
	}

	blocks := make([]string, len(entries))
	for i, e := range entries {
		var b strings.Builder
		fmt.Fprintf(&b, "- ID: %s\n", e.Handle())
		if e.Kind() == entry.KindOnce {
			b.WriteString("  Type: One-time entry\n")
			fmt.Fprintf(&b, "  Subject: %s\n", e.Subject)
			fmt.Fprintf(&b, "  Date: %s\n", e.Date())
			fmt.Fprintf(&b, "  Day: %s\n", e.Day())
		} else {
			b.WriteString("  Type: Recurring entry\n")
			fmt.Fprintf(&b, "  Subject: %s\n", e.Subject)
			fmt.Fprintf(&b, "  Day: %s\n", e.Day())
			fmt.Fprintf(&b, "  Recurrence: %s\n", e.Recurrence())
		}
		fmt.Fprintf(&b, "  Start Time: %s\n", e.StartTime)
		fmt.Fprintf(&b, "  End Time: %s\n", e.EndTime)
		notes := e.Notes
		if notes == "" {
			notes = "(none)"
		}
		fmt.Fprintf(&b, "  Notes: %s", notes)
		blocks[i] = b.String()
	}
	return "\nCurrent timetable entries:\n" + strings.Join(blocks, "\n\n") + "\n"
}
