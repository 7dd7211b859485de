package cmd

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/config"
	"github.com/mrlokans/bookfinder/internal/tui"
)

func newTUICmd(cfg *config.Config, newApp appFactory) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// log output would corrupt the alternate screen
			if logFile != "" {
				f, err := tea.LogToFile(logFile, "bookfinder")
				if err != nil {
					return err
				}
				defer f.Close()
			} else {
				log.SetOutput(io.Discard)
				defer log.SetOutput(os.Stderr)
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			session := app.NewSearchSession()
			defer session.Close()

			return tui.Run(tui.Options{
				Context:    cmd.Context(),
				Session:    session,
				Favourites: app.Favourites,
				Resolver:   app.Resolver,
			})
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", cfg.TUI.LogFile, "Write logs to this file while the UI runs (env TUI_LOG_FILE)")
	return cmd
}
