// Package cmd defines the bookfinder command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/config"
	"github.com/mrlokans/bookfinder/internal/entrypoint"
)

// appFactory builds the wired application. Commands call it lazily so that
// --help never touches storage.
type appFactory func() (*entrypoint.App, error)

// NewRootCmd creates the root command. Without a subcommand it serves the
// HTTP API.
func NewRootCmd(cfg *config.Config, version string) *cobra.Command {
	newApp := func() (*entrypoint.App, error) {
		return entrypoint.NewApp(cfg)
	}

	root := &cobra.Command{
		Use:   "bookfinder",
		Short: "Search the book catalog and keep favourites",
		Long: `Search a remote book catalog and keep a local list of favourite books.

bookfinder provides:
- An HTTP API for search, favourites, covers and background tasks
- An interactive terminal UI with debounced search
- Commands for one-off searches and favourites management`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(cfg, version)
		},
	}

	root.AddCommand(newServeCmd(cfg, version))
	root.AddCommand(newTUICmd(cfg, newApp))
	root.AddCommand(newSearchCmd(newApp))
	root.AddCommand(newFavoritesCmd(newApp))

	return root
}

func newServeCmd(cfg *config.Config, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(cfg, version)
		},
	}
}
