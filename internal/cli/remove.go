package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamkelajack06/Study-Flow/internal/timetable"
)

var removeCmd = LeafCommand{
	Use:     "remove [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a timetable entry",
	Args:    cobra.MaximumNArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return withApp(cmd, NewPromptKit(yes), func(a *app) error {
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return runRemove(cmd, a, id)
		})
	},
}.Build()

func runRemove(cmd *cobra.Command, a *app, id string) error {
	ref := timetable.Ref{ID: id}
	if id == "" {
		e, err := pickEntry(a, "", "Which entry do you want to delete?")
		if err != nil {
			return err
		}
		ref = timetable.RefTo(e)
	}

	res := a.store.Delete(cmd.Context(), ref)
	w := cmd.OutOrStdout()
	if res.Cancelled {
		_, _ = fmt.Fprintln(w, Warning("cancelled"))
		return nil
	}
	if !res.OK {
		return failed(res)
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", Info("removed"), describe(*res.Entry))
	return nil
}
