package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafCommandBuild(t *testing.T) {
	cmd := LeafCommand{
		Use:     "add <subject>",
		Aliases: []string{"new"},
		Short:   "Add an entry",
		Args:    cobra.ExactArgs(1),
		BoolFlags: []BoolFlag{
			{Name: "yes", Shorthand: "y", Usage: "skip confirmation"},
			{Name: "dry-run", Usage: "simulate", Default: true},
		},
		StrFlags: []StringFlag{
			{Name: "when", Shorthand: "w", Usage: "schedule", Default: "today"},
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}.Build()

	assert.Equal(t, "add <subject>", cmd.Use)
	assert.Equal(t, []string{"new"}, cmd.Aliases)
	assert.True(t, cmd.SilenceUsage)
	assert.NotNil(t, cmd.RunE)

	yes := cmd.Flags().Lookup("yes")
	require.NotNil(t, yes)
	assert.Equal(t, "y", yes.Shorthand)
	assert.Equal(t, "false", yes.DefValue)

	dryRun := cmd.Flags().Lookup("dry-run")
	require.NotNil(t, dryRun)
	assert.Equal(t, "true", dryRun.DefValue)

	when := cmd.Flags().Lookup("when")
	require.NotNil(t, when)
	assert.Equal(t, "today", when.DefValue)
}

func TestGroupCommandBuild(t *testing.T) {
	cmd := GroupCommand{
		Use:         "category",
		Short:       "Manage categories",
		Subcommands: []*cobra.Command{{Use: "add"}, {Use: "list"}},
	}.Build()

	assert.Equal(t, "category", cmd.Use)
	assert.Len(t, cmd.Commands(), 2)
	assert.Nil(t, cmd.RunE)
}
