package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = LeafCommand{
	Use:   "add <subject>",
	Short: "Add a timetable entry",
	Example: `  studyflow add Math --when "from 9am to 10am every monday"
  studyflow add Exam --date 2025-03-10 --start "9:00 AM" --end "11:00 AM" -c Exam`,
	Args:     cobra.MinimumNArgs(1),
	StrFlags: scheduleFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := readScheduleOptions(cmd)
		opts.Subject = strings.Join(args, " ")
		return withApp(cmd, NewPromptKit(false), func(a *app) error {
			return runAdd(cmd, a, opts)
		})
	},
}.Build()

func runAdd(cmd *cobra.Command, a *app, opts scheduleOptions) error {
	candidate, err := buildEntry(emptyEntry, opts, a.store.Now())
	if err != nil {
		return err
	}

	res := a.store.Add(cmd.Context(), candidate)
	if !res.OK {
		reportConflict(cmd.ErrOrStderr(), res.Err)
		return failed(res)
	}
	noteOffGrid(cmd.ErrOrStderr(), *res.Entry)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", Info("added"), describe(*res.Entry), Silent(res.Entry.Handle()))
	return nil
}
