package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yamkelajack06/Study-Flow/internal/config"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var categoryCmd = GroupCommand{
	Use:   "category",
	Short: "Manage entry categories",
	Subcommands: []*cobra.Command{
		categoryAddCmd,
		categoryListCmd,
	},
}.Build()

var categoryAddCmd = LeafCommand{
	Use:     "add <name>",
	Short:   "Register a category and its color",
	Example: `  studyflow category add Lab --color "#8b5cf6"`,
	Args:    cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "color", Usage: `hex color such as "#8b5cf6" (asked for when omitted)`},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := cmd.Flags().GetString("color")
		return withApp(cmd, NewPromptKit(false), func(a *app) error {
			return runCategoryAdd(cmd, a, args[0], color)
		})
	},
}.Build()

var categoryListCmd = LeafCommand{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, PromptKit{}, func(a *app) error {
			return runCategoryList(cmd, a)
		})
	},
}.Build()

// runCategoryAdd registers the category with the store and keeps it in the
// config file so later sessions know it too.
func runCategoryAdd(cmd *cobra.Command, a *app, name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is required")
	}

	if color == "" && a.kit.Prompt != nil {
		answer, err := a.kit.Prompt(fmt.Sprintf("Color for %q (#rrggbb, empty for gray)", name))
		if err != nil {
			return err
		}
		color = strings.TrimSpace(answer)
	}
	if color != "" && !hexColor.MatchString(color) {
		return fmt.Errorf("invalid color %q, expected #rrggbb", color)
	}

	w := cmd.OutOrStdout()
	if !a.store.AddCategory(name, color) {
		_, _ = fmt.Fprintf(w, "%s category %s already exists\n", Warning("unchanged"), Bold(name))
		return nil
	}

	color = a.store.ColorFor(name)
	a.cfg.Categories = append(a.cfg.Categories, config.CategoryConfig{Name: name, Color: color})
	if err := config.Save(a.cfgPath, a.cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s category %s %s\n", Info("added"), Swatch(color, name), Silent(color))
	return nil
}

func runCategoryList(cmd *cobra.Command, a *app) error {
	w := cmd.OutOrStdout()
	for _, c := range a.store.Categories() {
		_, _ = fmt.Fprintf(w, "%s %-12s %s\n", Swatch(c.Color, "●"), c.Name, Silent(c.Color))
	}
	return nil
}
