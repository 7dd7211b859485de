// Package database provides the relational storage layer for favourites.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── favourites/      # Favourite book CRUD operations
//
// # Usage
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./bookfinder.db")
//
//	// Create the repository
//	repo := favourites.NewRepository(db.DB)
//
//	// Use it
//	err = repo.Upsert(ctx, entities.ToRow(book))
//	rows, err := repo.GetAll(ctx)
//
// The repository reports every failure. Deciding which failures degrade and
// which surface to callers is left to internal/favorites, which also opens the
// database lazily on first use.
package database
