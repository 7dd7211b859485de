package favorites

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/mrlokans/bookfinder/internal/database"
	"github.com/mrlokans/bookfinder/internal/database/favourites"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// Opener creates the sqlite handle. It is called at most once per backend.
type Opener func() (*database.Database, error)

// RelationalBackend stores favourites in the embedded sqlite database.
// Reads never fail: storage errors are logged and yield empty results.
// Writes return *StorageWriteError, or ErrStorageUnavailable when the
// database could not be opened.
type RelationalBackend struct {
	opener Opener

	once    sync.Once
	db      *database.Database
	repo    *favourites.Repository
	initErr error
}

// NewRelationalBackend creates a backend that opens its database on first use.
func NewRelationalBackend(opener Opener) *RelationalBackend {
	return &RelationalBackend{opener: opener}
}

func (b *RelationalBackend) repository() (*favourites.Repository, error) {
	b.once.Do(func() {
		db, err := b.opener()
		if err != nil {
			log.Printf("[FAVORITES] Relational storage unavailable: %v", err)
			b.initErr = err
			return
		}
		b.db = db
		b.repo = favourites.NewRepository(db.DB)
	})
	if b.initErr != nil {
		return nil, ErrStorageUnavailable
	}
	return b.repo, nil
}

// Insert upserts the book by id.
func (b *RelationalBackend) Insert(ctx context.Context, book entities.Book) error {
	repo, err := b.repository()
	if err != nil {
		return err
	}
	if err := repo.Upsert(ctx, entities.ToRow(book)); err != nil {
		return &StorageWriteError{Op: "insert", Err: err}
	}
	return nil
}

// GetAll returns every stored favourite ordered by title.
func (b *RelationalBackend) GetAll(ctx context.Context) []entities.Book {
	repo, err := b.repository()
	if err != nil {
		return []entities.Book{}
	}
	rows, err := repo.GetAll(ctx)
	if err != nil {
		log.Printf("[FAVORITES] Failed to read favourites: %v", err)
		return []entities.Book{}
	}

	books := make([]entities.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, entities.FromRow(row))
	}
	return books
}

// Delete removes the favourite with the given id.
func (b *RelationalBackend) Delete(ctx context.Context, id string) error {
	repo, err := b.repository()
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return &StorageWriteError{Op: "delete", Err: err}
	}
	return nil
}

func (b *RelationalBackend) IsFavorite(ctx context.Context, id string) bool {
	repo, err := b.repository()
	if err != nil {
		return false
	}
	ok, err := repo.Exists(ctx, id)
	if err != nil {
		log.Printf("[FAVORITES] Failed to check favourite %s: %v", id, err)
		return false
	}
	return ok
}

// ClearAll removes every favourite.
func (b *RelationalBackend) ClearAll(ctx context.Context) error {
	repo, err := b.repository()
	if err != nil {
		return err
	}
	if err := repo.DeleteAll(ctx); err != nil {
		return &StorageWriteError{Op: "clear", Err: err}
	}
	return nil
}

// Check opens the database if needed, pings it and queries the favourites table.
func (b *RelationalBackend) Check(ctx context.Context) error {
	repo, err := b.repository()
	if err != nil {
		return err
	}
	if err := b.db.Ping(); err != nil {
		return err
	}
	if _, err := repo.Count(ctx); err != nil {
		return fmt.Errorf("query favourites table: %w", err)
	}
	return nil
}

// Close releases the database handle if it was opened.
func (b *RelationalBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
