package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(newApp appFactory) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the remote catalog",
		Long: `Search the remote catalog and print matching volumes. Favourites are
marked with a star.

Examples:
  bookfinder search dune
  bookfinder search "frank herbert" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("query is required")
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			books, err := app.Catalog.Search(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, books)
			}
			if len(books) == 0 {
				fmt.Fprintf(out, "No books found matching %q\n", query)
				return nil
			}

			starred := make(map[string]bool, len(books))
			for _, b := range books {
				starred[b.ID] = app.Favourites.IsFavorite(cmd.Context(), b.ID)
			}

			fmt.Fprintf(out, "Found %d result(s) for %q:\n\n", len(books), query)
			return writeBooks(out, books, starred)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
