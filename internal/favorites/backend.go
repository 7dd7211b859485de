package favorites

import (
	"context"

	"github.com/mrlokans/bookfinder/internal/entities"
	"github.com/mrlokans/bookfinder/internal/platform"
	"github.com/mrlokans/bookfinder/internal/prefs"
)

// Backend is the storage contract the Service dispatches to. Reads degrade to
// empty/false; writes report failures as errors.
type Backend interface {
	Name() string
	Add(ctx context.Context, book entities.Book) error
	Remove(ctx context.Context, id string) error
	IsFavorite(ctx context.Context, id string) bool
	List(ctx context.Context) []entities.Book
	Clear(ctx context.Context) error
	// Check reports whether the backend is usable.
	Check(ctx context.Context) error
	Close() error
}

const (
	BackendRelational  = "relational"
	BackendPreferences = "preferences"
)

// NewBackend picks the storage backend for the given capabilities. The opener
// is only used for the relational backend and store only for the preference
// backend.
func NewBackend(caps platform.Capabilities, opener Opener, store prefs.Store) Backend {
	if caps.RelationalStorage {
		return &relationalAdapter{NewRelationalBackend(opener)}
	}
	return &preferenceAdapter{NewPreferenceBackend(store)}
}

type relationalAdapter struct {
	*RelationalBackend
}

func (a *relationalAdapter) Name() string { return BackendRelational }

func (a *relationalAdapter) Add(ctx context.Context, book entities.Book) error {
	return a.Insert(ctx, book)
}

func (a *relationalAdapter) Remove(ctx context.Context, id string) error {
	return a.Delete(ctx, id)
}

func (a *relationalAdapter) List(ctx context.Context) []entities.Book {
	return a.GetAll(ctx)
}

func (a *relationalAdapter) Clear(ctx context.Context) error {
	return a.ClearAll(ctx)
}

type preferenceAdapter struct {
	*PreferenceBackend
}

func (a *preferenceAdapter) Name() string { return BackendPreferences }

func (a *preferenceAdapter) Add(ctx context.Context, book entities.Book) error {
	if !a.PreferenceBackend.Add(ctx, book) {
		return &StorageWriteError{Op: "insert"}
	}
	return nil
}

func (a *preferenceAdapter) Remove(ctx context.Context, id string) error {
	if !a.PreferenceBackend.Remove(ctx, id) {
		return &StorageWriteError{Op: "delete"}
	}
	return nil
}

func (a *preferenceAdapter) List(ctx context.Context) []entities.Book {
	return a.GetAll(ctx)
}

func (a *preferenceAdapter) Clear(ctx context.Context) error {
	if !a.PreferenceBackend.Clear(ctx) {
		return &StorageWriteError{Op: "clear"}
	}
	return nil
}

func (a *preferenceAdapter) Check(context.Context) error { return nil }

func (a *preferenceAdapter) Close() error { return nil }
