package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/tasks"
)

func newFavoritesCmd(newApp appFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"favourites", "fav"},
		Short:   "Manage favourite books",
		Long:    `List, add, remove and refresh favourite books in local storage.`,
	}

	cmd.AddCommand(newFavoritesListCmd(newApp))
	cmd.AddCommand(newFavoritesAddCmd(newApp))
	cmd.AddCommand(newFavoritesRemoveCmd(newApp))
	cmd.AddCommand(newFavoritesClearCmd(newApp))
	cmd.AddCommand(newFavoritesRefreshCmd(newApp))

	return cmd
}

func newFavoritesListCmd(newApp appFactory) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favourites in storage order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			books := app.Favourites.List(cmd.Context())
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, books)
			}
			if len(books) == 0 {
				fmt.Fprintln(out, "No favourites yet.")
				fmt.Fprintln(out, "Use 'bookfinder favorites add <volume-id>' to add one.")
				return nil
			}

			if err := writeBooks(out, books, nil); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %d favourite(s) (%s storage)\n", len(books), app.Favourites.Backend())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print favourites as JSON")
	return cmd
}

func newFavoritesAddCmd(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "add <volume-id> [volume-id...]",
		Short: "Fetch volumes from the catalog and add them to favourites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			for _, id := range args {
				book, err := app.Catalog.GetVolume(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("fetch volume %s: %w", id, err)
				}
				if err := app.Favourites.Add(cmd.Context(), *book); err != nil {
					return fmt.Errorf("add %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s) to favourites\n", book.Title, book.ID)
			}
			return nil
		},
	}
}

func newFavoritesRemoveCmd(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id> [id...]",
		Aliases: []string{"rm"},
		Short:   "Remove books from favourites",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			for _, id := range args {
				if err := app.Favourites.Remove(cmd.Context(), id); err != nil {
					return fmt.Errorf("remove %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favourites\n", id)
			}
			return nil
		},
	}
}

func newFavoritesClearCmd(newApp appFactory) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favourite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear favourites without --yes")
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Favourites.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all favourites")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm removal of every favourite")
	return cmd
}

func newFavoritesRefreshCmd(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [id...]",
		Short: "Replace favourites with the catalog's current records",
		Long: `Refresh the given favourites, or every favourite when no id is given,
from the remote catalog. Runs in the foreground.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if len(args) == 0 {
				refreshAll := tasks.RefreshAllFavoritesProcessor(app.Catalog, app.Favourites)
				return refreshAll(cmd.Context(), tasks.RefreshAllFavoritesTask{})
			}

			refresh := tasks.RefreshFavoriteProcessor(app.Catalog, app.Favourites)
			for _, id := range args {
				if err := refresh(cmd.Context(), tasks.RefreshFavoriteTask{BookID: id}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %s\n", id)
			}
			return nil
		},
	}
}
