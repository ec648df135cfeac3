package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache [requirement...]",
		Short: "Populate the package cache without touching the lockfile",
		Long: `Populate the package cache without touching the lockfile.

Without arguments every declared dependency is cached; with arguments only
the listed requirements are.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.CachePackages(cmd.Context(), options(cmd), args)
		},
	}
}
