package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Resolve declared dependencies, populate the cache, and write the lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options(cmd)
			opts.Frozen, _ = cmd.Flags().GetBool("frozen")
			return c.app.Install(cmd.Context(), opts)
		},
	}
	cmd.Flags().Bool("frozen", false, "Fail instead of updating the lockfile")
	return cmd
}
