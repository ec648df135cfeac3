package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <requirement>...",
		Short: "Resolve and cache new dependencies and record them in the lockfile",
		Long: `Resolve and cache new dependencies and record them in the lockfile.

Requirements use the "npm:name@constraint" / "jsr:name@constraint" form;
the npm: prefix may be omitted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Add(cmd.Context(), options(cmd), args)
		},
	}
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>...",
		Short: "Drop dependencies from the lockfile by package name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Remove(cmd.Context(), options(cmd), args)
		},
	}
}
