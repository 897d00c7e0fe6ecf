package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
)

var editCmd = LeafCommand{
	Use:   "edit [id]",
	Short: "Change an existing entry",
	Example: `  studyflow edit Math-Monday-9:00\ AM --start "10:00 AM" --end "11:00 AM"
  studyflow edit   # pick the entry interactively`,
	Args:     cobra.MaximumNArgs(1),
	StrFlags: append([]StringFlag{{Name: "subject", Shorthand: "s", Usage: "new subject"}}, scheduleFlags...),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := readScheduleOptions(cmd)
		return withApp(cmd, NewPromptKit(false), func(a *app) error {
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return runEdit(cmd, a, id, opts)
		})
	},
}.Build()

func runEdit(cmd *cobra.Command, a *app, id string, opts scheduleOptions) error {
	prior, err := pickEntry(a, id, "Which entry do you want to edit?")
	if err != nil {
		return err
	}

	candidate, err := buildEntry(prior, opts, a.store.Now())
	if err != nil {
		return err
	}

	res := a.store.Update(cmd.Context(), prior.Handle(), candidate)
	if !res.OK {
		reportConflict(cmd.ErrOrStderr(), res.Err)
		return failed(res)
	}
	noteOffGrid(cmd.ErrOrStderr(), *res.Entry)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", Info("updated"), describe(*res.Entry), Silent(res.Entry.Handle()))
	return nil
}

// pickEntry finds the entry addressed by id, or lets the user select one
// when id is empty.
func pickEntry(a *app, id, title string) (entry.Entry, error) {
	if id != "" {
		e, ok := a.store.Find(id)
		if !ok {
			return entry.Entry{}, fmt.Errorf("entry %q not found", id)
		}
		return e, nil
	}

	all := a.store.Entries()
	if len(all) == 0 {
		return entry.Entry{}, fmt.Errorf("the timetable is empty")
	}
	if a.kit.Select == nil {
		return entry.Entry{}, fmt.Errorf("an entry id is required")
	}
	i, err := a.kit.Select(title, entryLabels(all))
	if err != nil {
		return entry.Entry{}, err
	}
	if i < 0 || i >= len(all) {
		return entry.Entry{}, fmt.Errorf("no entry selected")
	}
	return all[i], nil
}

func entryLabels(entries []entry.Entry) []string {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = fmt.Sprintf("%s (%s, %s - %s)", e.Subject, entry.Describe(e), e.StartTime, e.EndTime)
	}
	return labels
}
