package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yamkelajack06/Study-Flow/internal/timetable"
)

var removeManyCmd = LeafCommand{
	Use:   "remove-many [refs.json]",
	Short: "Delete several entries after one confirmation",
	Example: `  studyflow remove-many refs.json   # [{"id": "..."}, {"subject": "Math", "day": "Monday", "startTime": "9:00 AM"}]
  studyflow remove-many             # pick entries interactively`,
	Args: cobra.MaximumNArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return withApp(cmd, NewPromptKit(yes), func(a *app) error {
			var refs []timetable.Ref
			if len(args) > 0 {
				var err error
				if refs, err = readRefs(args[0]); err != nil {
					return err
				}
			}
			return runRemoveMany(cmd, a, refs)
		})
	},
}.Build()

func readRefs(path string) ([]timetable.Ref, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var refs []timetable.Ref
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return refs, nil
}

func runRemoveMany(cmd *cobra.Command, a *app, refs []timetable.Ref) error {
	if refs == nil {
		all := a.store.Entries()
		if len(all) == 0 {
			return fmt.Errorf("the timetable is empty")
		}
		if a.kit.MultiSelect == nil {
			return fmt.Errorf("a file of entry references is required")
		}
		picked, err := a.kit.MultiSelect("Which entries do you want to delete?", entryLabels(all))
		if err != nil {
			return err
		}
		for _, i := range picked {
			if i >= 0 && i < len(all) {
				refs = append(refs, timetable.RefTo(all[i]))
			}
		}
	}
	if len(refs) == 0 {
		return fmt.Errorf("nothing to delete")
	}

	summary := a.store.DeleteMultiple(cmd.Context(), refs)
	w := cmd.OutOrStdout()
	if summary.Cancelled {
		_, _ = fmt.Fprintln(w, Warning("cancelled"))
		return nil
	}

	_, _ = fmt.Fprintf(w, "%s %d of %d requested entries\n", Info("removed"), summary.Deleted, summary.Requested)
	if skipped := summary.Requested - summary.Deleted; skipped > 0 {
		_, _ = fmt.Fprintln(w, Warning(fmt.Sprintf("%d reference(s) did not match an entry", skipped)))
	}
	return nil
}
