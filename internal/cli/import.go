package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/timetable"
)

var importCmd = LeafCommand{
	Use:   "import <file>",
	Short: "Add every entry listed in a JSON or YAML file",
	Example: `  studyflow import semester.json
  studyflow import semester.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, NewPromptKit(false), func(a *app) error {
			records, err := readRecords(args[0])
			if err != nil {
				return err
			}
			return runImport(cmd, a, records)
		})
	},
}.Build()

// readRecords decodes a list of entry records. Files ending in .yaml or
// .yml are read as YAML, anything else as JSON.
func readRecords(path string) ([]entry.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []entry.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

func runImport(cmd *cobra.Command, a *app, records []entry.Record) error {
	var (
		candidates []entry.Entry
		rejected   []timetable.Failure
	)
	for _, r := range records {
		e, err := entry.Normalize(r)
		if err != nil {
			rejected = append(rejected, timetable.Failure{Entry: entry.Entry{Subject: r.Subject}, Reason: err.Error(), Err: err})
			continue
		}
		candidates = append(candidates, e)
	}

	res := a.store.AddMultiple(cmd.Context(), candidates)
	rejected = append(rejected, res.Failed...)

	w := cmd.OutOrStdout()
	for _, e := range res.Successful {
		_, _ = fmt.Fprintf(w, "%s %s\n", Info("added"), describe(e))
	}
	for _, f := range rejected {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", Error("skipped"), Bold(f.Entry.Subject), f.Reason)
	}
	_, _ = fmt.Fprintf(w, "imported %d of %d entries\n", len(res.Successful), len(records))

	if len(res.Successful) == 0 && len(records) > 0 {
		return fmt.Errorf("no entries were imported")
	}
	return nil
}
