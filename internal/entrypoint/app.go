package entrypoint

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/config"
	"github.com/mrlokans/bookfinder/internal/covers"
	"github.com/mrlokans/bookfinder/internal/database"
	"github.com/mrlokans/bookfinder/internal/entities"
	"github.com/mrlokans/bookfinder/internal/favorites"
	http_controllers "github.com/mrlokans/bookfinder/internal/http"
	"github.com/mrlokans/bookfinder/internal/platform"
	"github.com/mrlokans/bookfinder/internal/prefs"
	"github.com/mrlokans/bookfinder/internal/scheduler"
	"github.com/mrlokans/bookfinder/internal/search"
	"github.com/mrlokans/bookfinder/internal/tasks"
)

// App holds the wired components shared by the server, the CLI and the TUI.
type App struct {
	Config     *config.Config
	Caps       platform.Capabilities
	Favourites *favorites.Service
	Catalog    *catalog.Client
	Resolver   *covers.Resolver
	CoverCache *covers.Cache               // nil when the cache directory is unusable
	Tasks      *tasks.Client               // nil until EnableTasks succeeds
	Scheduler  *scheduler.RefreshScheduler // nil until EnableScheduler succeeds
}

// NewApp selects the platform capabilities and builds the components. The
// favourites database is opened lazily on first use.
func NewApp(cfg *config.Config) (*App, error) {
	caps, err := platform.Resolve(platform.Detect(), cfg.Storage.Backend, cfg.Storage.ImageVariant)
	if err != nil {
		return nil, err
	}
	log.Printf("Platform capabilities: %s", caps)

	var store prefs.Store
	if !caps.RelationalStorage {
		fileStore, err := prefs.OpenFileStore(cfg.Storage.PrefsPath)
		if err != nil {
			log.Printf("WARNING: cannot open preferences at %s: %v", cfg.Storage.PrefsPath, err)
			log.Printf("         falling back to in-memory preferences (no persistence)")
			store = prefs.NewMemoryStore()
		} else {
			log.Printf("Favourites stored in %s", fileStore.Path())
			store = fileStore
		}
	}

	dbPath := cfg.Database.Path
	opener := func() (*database.Database, error) {
		return database.NewDatabase(dbPath)
	}

	variant := covers.Unconstrained
	if caps.ConstrainedImages {
		variant = covers.Constrained
	}

	coverCache, err := covers.NewCache(cfg.Covers.CacheDir)
	if err != nil {
		log.Printf("WARNING: Failed to initialize cover cache: %v", err)
		coverCache = nil
	} else {
		log.Printf("Cover cache initialized at %s", cfg.Covers.CacheDir)
	}

	return &App{
		Config:     cfg,
		Caps:       caps,
		Favourites: favorites.NewService(favorites.NewBackend(caps, opener, store)),
		Catalog: catalog.NewClient(catalog.Options{
			BaseURL:           cfg.Catalog.BaseURL,
			APIKey:            cfg.Catalog.APIKey,
			MaxResults:        cfg.Catalog.MaxResults,
			RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
			Timeout:           cfg.Catalog.Timeout,
		}),
		Resolver:   covers.NewResolver(variant),
		CoverCache: coverCache,
	}, nil
}

// CoverLoader returns the loader used for cover resolution.
func (a *App) CoverLoader() covers.Loader {
	if a.CoverCache == nil {
		return uncachedLoader{}
	}
	return a.CoverCache
}

// NewSearchSession creates a debounced search session over the catalog.
func (a *App) NewSearchSession() *search.Session {
	return search.NewSession(a.Catalog, a.Config.Search.Debounce)
}

// EnableTasks opens the task queue, registers its processors and schedules a
// cover prefetch for every new favourite. The queue shares the sqlite engine,
// so it stays off without relational storage.
func (a *App) EnableTasks() error {
	if !a.Config.Tasks.Enabled {
		log.Printf("Task queue disabled by configuration")
		return nil
	}
	if !a.Caps.RelationalStorage {
		log.Printf("Task queue disabled: relational storage is unavailable")
		return nil
	}

	client, err := tasks.NewClient(a.Config.Database.Path, tasks.Config{
		Workers:         a.Config.Tasks.Workers,
		ReleaseAfter:    a.Config.Tasks.ReleaseAfter,
		CleanupInterval: a.Config.Tasks.CleanupInterval,
	})
	if err != nil {
		return fmt.Errorf("initialize task queue: %w", err)
	}

	client.Register(
		tasks.NewPrefetchCoverQueue(a.Resolver, a.CoverLoader()),
		tasks.NewRefreshFavoriteQueue(a.Catalog, a.Favourites),
		tasks.NewRefreshAllFavoritesQueue(a.Catalog, a.Favourites),
	)

	if a.CoverCache != nil {
		a.Favourites.OnAdded(func(book entities.Book) {
			task := tasks.PrefetchCoverTask{BookID: book.ID, ImageURL: entities.FromPtr(book.ImageURL)}
			if _, err := client.Enqueue(task); err != nil {
				log.Printf("[TASK] Failed to enqueue cover prefetch for %s: %v", book.ID, err)
			}
		})
	}

	a.Tasks = client
	return nil
}

// EnableScheduler starts the periodic refresh of every favourite when a
// schedule is configured and the task queue is running. It stops with ctx.
func (a *App) EnableScheduler(ctx context.Context) error {
	if a.Tasks == nil || a.Config.Tasks.RefreshSchedule == "" {
		return nil
	}

	s := scheduler.NewRefreshScheduler(a.Tasks, a.Config.Tasks.RefreshSchedule)
	if err := s.Start(ctx); err != nil {
		return fmt.Errorf("start refresh scheduler: %w", err)
	}
	a.Scheduler = s
	return nil
}

// RouterConfig assembles the HTTP router dependencies.
func (a *App) RouterConfig(version string) http_controllers.RouterConfig {
	cfg := http_controllers.RouterConfig{
		Searcher:      a.Catalog,
		Favourites:    a.Favourites,
		CoverResolver: a.Resolver,
		CoverLoader:   a.CoverLoader(),
		TasksEnabled:  a.Tasks != nil,
		Version:       version,
	}
	if a.Tasks != nil {
		cfg.TaskQueue = a.Tasks
	}
	return cfg
}

// Close releases the favourites backend and the task queue.
func (a *App) Close() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if err := a.Favourites.Close(); err != nil {
		log.Printf("Error closing favourites storage: %v", err)
	}
}

// uncachedLoader hands the remote URL straight to the client.
type uncachedLoader struct{}

func (uncachedLoader) Load(context.Context, string, string) (string, error) {
	return "", nil
}
