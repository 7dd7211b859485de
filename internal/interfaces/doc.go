// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Remote Catalog
//
//   - search.Searcher: free-text search used by the search session (internal/search/session.go)
//   - http.Searcher: the same contract for the search endpoint (internal/http/search.go)
//   - tasks.VolumeFetcher: single-volume lookup for favourite refresh (internal/tasks/refresh_favorite.go)
//
// ## Favourites
//
//   - favorites.Backend: storage contract behind the Service (internal/favorites/backend.go)
//   - http.FavouritesService: favourites endpoints (internal/http/favourites.go)
//   - http.FavouriteLookup: stored cover URL lookup (internal/http/covers.go)
//   - tasks.FavoriteStore: refresh tasks (internal/tasks/refresh_favorite.go)
//
// ## Storage
//
//   - prefs.Store: string and string-list preferences (internal/prefs/prefs.go)
//
// ## Covers and Tasks
//
//   - covers.Loader: fetches a cover to a local path (internal/covers/resolver.go)
//   - http.TaskQueue: enqueue and status for the task endpoints (internal/http/tasks.go)
//   - scheduler.Enqueuer: periodic favourite refresh (internal/scheduler/refresh.go)
//
// # Adding a New Favourites Backend
//
// To keep favourites somewhere else (e.g., a remote KV service):
//
//  1. Implement favorites.Backend in internal/favorites/
//
//     type kvAdapter struct {
//         client *kv.Client
//     }
//
//     func (a *kvAdapter) Name() string { return "kv" }
//     func (a *kvAdapter) Add(ctx context.Context, book entities.Book) error
//
//     var _ Backend = (*kvAdapter)(nil)
//
//  2. Select it in favorites.NewBackend from platform.Capabilities
//
// Reads must degrade to empty results; writes must return
// ErrStorageUnavailable or a *StorageWriteError.
//
// # Adding a New Background Task
//
//  1. Define the task and its queue config in internal/tasks/
//
//     type InvalidateCoverTask struct {
//         BookID string `json:"book_id"`
//     }
//
//     func (t InvalidateCoverTask) Config() backlite.QueueConfig
//
//  2. Register the queue in entrypoint.App.EnableTasks
//
//  3. Add the type to the task list in internal/http/tasks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
