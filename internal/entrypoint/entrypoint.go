package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/config"
	http_controllers "github.com/mrlokans/bookfinder/internal/http"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// SIGKILL cannot be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application and serves the HTTP API until interrupted.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting Book Finder v%s", version)

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.EnableTasks(); err != nil {
		return err
	}

	var taskCtxCancel context.CancelFunc
	if app.Tasks != nil {
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go app.Tasks.Start(taskCtx)

		if err := app.EnableScheduler(taskCtx); err != nil {
			taskCtxCancel()
			return err
		}
	}

	router := http_controllers.NewRouter(app.RouterConfig(version))

	onShutdown := func(ctx context.Context) {
		if app.Scheduler != nil {
			app.Scheduler.Stop()
		}
		if app.Tasks != nil && taskCtxCancel != nil {
			app.Tasks.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
	return nil
}
