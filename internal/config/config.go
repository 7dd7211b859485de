package config

import (
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Storage
		Catalog
		Covers
		Search
		Tasks
		TUI
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Storage struct {
		Backend      string // auto, relational or preferences
		PrefsPath    string
		ImageVariant string // auto, constrained or unconstrained
	}
	Catalog struct {
		BaseURL           string
		APIKey            string
		MaxResults        int
		RequestsPerSecond float64
		Timeout           time.Duration // 0 leaves the transport default
	}
	Covers struct {
		CacheDir string
	}
	Search struct {
		Debounce time.Duration
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
		RefreshSchedule string // cron expression, empty disables
	}
	TUI struct {
		LogFile string
	}
)

// LoadDotEnv reads .env and .env.local into the environment when present.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// coversDir defaults the cover cache to a directory next to the database.
func coversDir(v *viper.Viper) string {
	if dir := v.GetString("COVERS_CACHE_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(filepath.Dir(v.GetString("DATABASE_PATH")), "covers")
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Storage selection defaults
	v.SetDefault("storage_backend", "auto")
	v.SetDefault("prefs_path", DefaultPrefsPath)
	v.SetDefault("image_variant", "auto")

	// Catalog defaults
	v.SetDefault("catalog_base_url", DefaultCatalogBaseURL)
	v.SetDefault("catalog_api_key", "")
	v.SetDefault("catalog_max_results", 20)
	v.SetDefault("catalog_rate_limit", 5)
	v.SetDefault("catalog_timeout", "0s")

	v.SetDefault("covers_cache_dir", "")
	v.SetDefault("search_debounce", "500ms")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("refresh_schedule", "")

	v.SetDefault("tui_log_file", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Storage: Storage{
			Backend:      v.GetString("STORAGE_BACKEND"),
			PrefsPath:    v.GetString("PREFS_PATH"),
			ImageVariant: v.GetString("IMAGE_VARIANT"),
		},
		Catalog: Catalog{
			BaseURL:           v.GetString("CATALOG_BASE_URL"),
			APIKey:            v.GetString("CATALOG_API_KEY"),
			MaxResults:        v.GetInt("CATALOG_MAX_RESULTS"),
			RequestsPerSecond: v.GetFloat64("CATALOG_RATE_LIMIT"),
			Timeout:           v.GetDuration("CATALOG_TIMEOUT"),
		},
		Covers: Covers{
			CacheDir: coversDir(v),
		},
		Search: Search{
			Debounce: v.GetDuration("SEARCH_DEBOUNCE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RefreshSchedule: v.GetString("REFRESH_SCHEDULE"),
		},
		TUI: TUI{
			LogFile: v.GetString("TUI_LOG_FILE"),
		},
	}
}
