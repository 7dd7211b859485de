package http

import (
	"github.com/mrlokans/bookfinder/internal/covers"
	"github.com/mrlokans/bookfinder/internal/favorites"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Remote catalog
	Searcher Searcher

	// Favourites facade
	Favourites *favorites.Service

	// Cover resolution
	CoverResolver *covers.Resolver
	CoverLoader   covers.Loader

	// Task queue (optional, nil disables /api/tasks)
	TaskQueue    TaskQueue
	TasksEnabled bool

	// Application info
	Version string
}
