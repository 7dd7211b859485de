package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookfinder/internal/covers"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// PrefetchCoverTask downloads a favourite's cover into the local cache so the
// covers endpoint can serve it from disk.
type PrefetchCoverTask struct {
	BookID   string `json:"book_id"`
	ImageURL string `json:"image_url,omitempty"`
}

// Config returns the queue configuration for cover prefetch tasks.
func (t PrefetchCoverTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prefetch_cover",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// PrefetchCoverProcessor creates a processor function for PrefetchCoverTask.
func PrefetchCoverProcessor(resolver *covers.Resolver, loader covers.Loader) backlite.QueueProcessor[PrefetchCoverTask] {
	return func(ctx context.Context, task PrefetchCoverTask) error {
		if resolver == nil || loader == nil {
			return fmt.Errorf("cover cache not configured")
		}

		book := entities.Book{ID: task.BookID, ImageURL: entities.ToPtr(task.ImageURL)}
		res := resolver.Resolve(ctx, book, loader)
		if res.Tier == covers.TierPlaceholder {
			return fmt.Errorf("no cover could be loaded for %s", task.BookID)
		}

		log.Printf("[TASK] Cached %s cover for %s at %s", res.Tier, task.BookID, res.Path)
		return nil
	}
}

// NewPrefetchCoverQueue creates a backlite queue for cover prefetch tasks.
func NewPrefetchCoverQueue(resolver *covers.Resolver, loader covers.Loader) backlite.Queue {
	return backlite.NewQueue(PrefetchCoverProcessor(resolver, loader))
}
