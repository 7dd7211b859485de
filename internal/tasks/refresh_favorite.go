package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// VolumeFetcher looks up a single catalog volume.
type VolumeFetcher interface {
	GetVolume(ctx context.Context, id string) (*entities.Book, error)
}

// FavoriteStore is the part of the favourites service the refresh tasks use.
type FavoriteStore interface {
	IsFavorite(ctx context.Context, id string) bool
	Add(ctx context.Context, book entities.Book) error
	List(ctx context.Context) []entities.Book
}

// RefreshFavoriteTask replaces a stored favourite with the catalog's current
// record for the same volume.
type RefreshFavoriteTask struct {
	BookID string `json:"book_id"`
}

// Config returns the queue configuration for favourite refresh tasks.
func (t RefreshFavoriteTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_favorite",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshFavoriteProcessor creates a processor function for RefreshFavoriteTask.
// Books removed from favourites before the task runs are skipped.
func RefreshFavoriteProcessor(fetcher VolumeFetcher, store FavoriteStore) backlite.QueueProcessor[RefreshFavoriteTask] {
	return func(ctx context.Context, task RefreshFavoriteTask) error {
		if fetcher == nil || store == nil {
			return fmt.Errorf("favourite refresh not configured")
		}

		if !store.IsFavorite(ctx, task.BookID) {
			log.Printf("[TASK] Book %s is no longer a favourite, skipping refresh", task.BookID)
			return nil
		}

		book, err := fetcher.GetVolume(ctx, task.BookID)
		if err != nil {
			return fmt.Errorf("fetch volume %s: %w", task.BookID, err)
		}

		if err := store.Add(ctx, *book); err != nil {
			return fmt.Errorf("save favourite %s: %w", task.BookID, err)
		}

		log.Printf("[TASK] Refreshed favourite %s (%s)", book.ID, book.Title)
		return nil
	}
}

// NewRefreshFavoriteQueue creates a backlite queue for favourite refresh tasks.
func NewRefreshFavoriteQueue(fetcher VolumeFetcher, store FavoriteStore) backlite.Queue {
	return backlite.NewQueue(RefreshFavoriteProcessor(fetcher, store))
}
