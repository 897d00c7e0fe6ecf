package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yamkelajack06/Study-Flow/internal/ical"
)

var exportCmd = GroupCommand{
	Use:   "export",
	Short: "Export the timetable",
	Subcommands: []*cobra.Command{
		exportICSCmd,
	},
}.Build()

var exportICSCmd = LeafCommand{
	Use:     "ics",
	Short:   "Export the timetable as an iCalendar file",
	Example: "  studyflow export ics -o timetable.ics",
	Args:    cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "output", Shorthand: "o", Usage: "file to write (defaults to stdout)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return withApp(cmd, PromptKit{}, func(a *app) error {
			return runExportICS(cmd, a, output)
		})
	},
}.Build()

func runExportICS(cmd *cobra.Command, a *app, output string) error {
	data, err := ical.Export(a.store.Entries(), a.store.Now())
	if err != nil {
		return err
	}

	if output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), data)
		return err
	}
	if err := os.WriteFile(output, []byte(data), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d entries to %s\n", Info("exported"), len(a.store.Entries()), output)
	return nil
}
