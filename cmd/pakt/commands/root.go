// Package commands implements the CLI commands for the pakt package manager.
package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/pakt/internal/app"
	"go.trai.ch/pakt/internal/build"
	"go.trai.ch/pakt/internal/core/domain"
)

// CLI represents the command line interface for pakt.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pakt",
		Short:         "A package manager for JS/TS dependencies",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Project directory holding pakt.yaml")
	rootCmd.PersistentFlags().String("reload", "", "Distrust cached entries for the listed packages (comma-separated)")
	rootCmd.PersistentFlags().Bool("reload-all", false, "Distrust every cached entry for this run")
	rootCmd.PersistentFlags().Bool("cache-only", false, "Forbid network access; use only cached entries")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// options assembles the per-invocation overrides from the persistent flags.
func options(cmd *cobra.Command) app.Options {
	dir, _ := cmd.Flags().GetString("dir")
	opts := app.Options{Dir: dir}

	reloadAll, _ := cmd.Flags().GetBool("reload-all")
	reload, _ := cmd.Flags().GetString("reload")
	cacheOnly, _ := cmd.Flags().GetBool("cache-only")

	switch {
	case reloadAll:
		opts.CacheSetting = &domain.CacheSetting{Kind: domain.CacheReloadAll}
	case reload != "":
		opts.CacheSetting = &domain.CacheSetting{
			Kind:  domain.CacheReloadSome,
			Names: strings.Split(reload, ","),
		}
	case cacheOnly:
		opts.CacheSetting = &domain.CacheSetting{Kind: domain.CacheOnly}
	}
	return opts
}
