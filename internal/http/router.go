package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	var storage StorageChecker
	var lookup FavouriteLookup
	if cfg.Favourites != nil {
		storage = cfg.Favourites
		lookup = cfg.Favourites
	}

	healthController := NewHealthController(storage, cfg.TasksEnabled, cfg.Version)
	router.GET("/health", healthController.Status)

	api := router.Group("/api")

	searchController := NewSearchController(cfg.Searcher)
	api.GET("/search", searchController.Search)

	favouritesController := NewFavouritesController(cfg.Favourites)
	api.GET("/favourites", favouritesController.ListFavourites)
	api.POST("/favourites", favouritesController.AddFavourite)
	api.POST("/favourites/toggle", favouritesController.ToggleFavourite)
	api.GET("/favourites/:id", favouritesController.GetFavouriteStatus)
	api.DELETE("/favourites/:id", favouritesController.RemoveFavourite)

	coversController := NewCoversController(cfg.CoverResolver, cfg.CoverLoader, lookup)
	api.GET("/covers/:id", coversController.GetCover)

	tasksController := NewTasksController(cfg.TaskQueue)
	api.GET("/tasks/types", tasksController.ListTaskTypes)
	api.GET("/tasks/:id", tasksController.GetTaskStatus)
	api.POST("/tasks/:type/run", tasksController.RunTask)

	return router
}
