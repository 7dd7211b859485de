package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// RefreshAllFavoritesTask refreshes every stored favourite sequentially.
type RefreshAllFavoritesTask struct{}

// Config returns the queue configuration for bulk refresh tasks.
func (t RefreshAllFavoritesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_all_favorites",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshAllFavoritesProcessor creates a processor function for
// RefreshAllFavoritesTask. A failing volume is logged and counted; the task
// only fails when nothing could be refreshed.
func RefreshAllFavoritesProcessor(fetcher VolumeFetcher, store FavoriteStore) backlite.QueueProcessor[RefreshAllFavoritesTask] {
	refreshOne := RefreshFavoriteProcessor(fetcher, store)

	return func(ctx context.Context, task RefreshAllFavoritesTask) error {
		if fetcher == nil || store == nil {
			return fmt.Errorf("favourite refresh not configured")
		}

		favourites := store.List(ctx)
		var refreshed, failed int
		for _, book := range favourites {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := refreshOne(ctx, RefreshFavoriteTask{BookID: book.ID}); err != nil {
				log.Printf("[TASK] Refresh of %s failed: %v", book.ID, err)
				failed++
				continue
			}
			refreshed++
		}

		log.Printf("[TASK] Refresh complete: %d total, %d refreshed, %d failed",
			len(favourites), refreshed, failed)

		if failed > 0 && refreshed == 0 {
			return fmt.Errorf("refresh all favourites: all %d refreshes failed", failed)
		}
		return nil
	}
}

// NewRefreshAllFavoritesQueue creates a backlite queue for bulk refresh tasks.
func NewRefreshAllFavoritesQueue(fetcher VolumeFetcher, store FavoriteStore) backlite.Queue {
	return backlite.NewQueue(RefreshAllFavoritesProcessor(fetcher, store))
}
