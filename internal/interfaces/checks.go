package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/covers"
	"github.com/mrlokans/bookfinder/internal/favorites"
	"github.com/mrlokans/bookfinder/internal/http"
	"github.com/mrlokans/bookfinder/internal/prefs"
	"github.com/mrlokans/bookfinder/internal/scheduler"
	"github.com/mrlokans/bookfinder/internal/search"
	"github.com/mrlokans/bookfinder/internal/tasks"
)

// =============================================================================
// Remote Catalog
// =============================================================================

var _ search.Searcher = (*catalog.Client)(nil)
var _ http.Searcher = (*catalog.Client)(nil)
var _ tasks.VolumeFetcher = (*catalog.Client)(nil)

// =============================================================================
// Favourites
// =============================================================================

var _ http.FavouritesService = (*favorites.Service)(nil)
var _ http.FavouriteLookup = (*favorites.Service)(nil)
var _ http.StorageChecker = (*favorites.Service)(nil)
var _ tasks.FavoriteStore = (*favorites.Service)(nil)

// =============================================================================
// Storage
// =============================================================================

var _ prefs.Store = (*prefs.FileStore)(nil)
var _ prefs.Store = (*prefs.MemoryStore)(nil)

// =============================================================================
// Covers and Tasks
// =============================================================================

var _ covers.Loader = (*covers.Cache)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
