package config

const (
	// DefaultDatabasePath is the sqlite file holding favourites on native targets
	DefaultDatabasePath = "./bookfinder.db"

	// DefaultPrefsPath is the preference file used when sqlite is unavailable
	DefaultPrefsPath = "~/.config/bookfinder/prefs.toml"

	// DefaultCatalogBaseURL is the Google Books API root
	DefaultCatalogBaseURL = "https://www.googleapis.com/books/v1"
)
