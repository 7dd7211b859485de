// Package favorites keeps the user's favourite books in local storage.
//
// Two backends exist: a sqlite table for native targets and a preference
// store for targets without the embedded engine. NewBackend chooses one at
// startup and Service exposes it to the HTTP API, the CLI and the TUI.
package favorites

import (
	"context"
	"log"
	"strings"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// Service is the single favourites entry point.
type Service struct {
	backend Backend
	onAdded func(entities.Book)
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// OnAdded registers a hook invoked after every successful Add.
func (s *Service) OnAdded(fn func(entities.Book)) {
	s.onAdded = fn
}

// Backend returns the name of the selected backend.
func (s *Service) Backend() string {
	return s.backend.Name()
}

// Add stores the book, replacing any favourite with the same id.
func (s *Service) Add(ctx context.Context, book entities.Book) error {
	if strings.TrimSpace(book.ID) == "" {
		return ErrInvalidBook
	}
	if err := s.backend.Add(ctx, book); err != nil {
		return err
	}

	log.Printf("[FAVORITES] Added %s (%s)", book.ID, book.Title)
	if s.onAdded != nil {
		s.onAdded(book)
	}
	return nil
}

// Remove deletes the favourite. Removing an unknown id succeeds.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.backend.Remove(ctx, id); err != nil {
		return err
	}
	log.Printf("[FAVORITES] Removed %s", id)
	return nil
}

func (s *Service) IsFavorite(ctx context.Context, id string) bool {
	return s.backend.IsFavorite(ctx, id)
}

func (s *Service) List(ctx context.Context) []entities.Book {
	return s.backend.List(ctx)
}

// Get returns the favourite with the given id.
func (s *Service) Get(ctx context.Context, id string) (entities.Book, bool) {
	for _, book := range s.backend.List(ctx) {
		if book.ID == id {
			return book, true
		}
	}
	return entities.Book{}, false
}

// Toggle removes the book when it is a favourite and adds it otherwise. It
// returns the resulting membership. On error the stored state is unchanged.
func (s *Service) Toggle(ctx context.Context, book entities.Book) (bool, error) {
	if s.IsFavorite(ctx, book.ID) {
		if err := s.Remove(ctx, book.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.Add(ctx, book); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes every favourite.
func (s *Service) Clear(ctx context.Context) error {
	return s.backend.Clear(ctx)
}

// Check reports whether the backend is usable.
func (s *Service) Check(ctx context.Context) error {
	return s.backend.Check(ctx)
}

func (s *Service) Close() error {
	return s.backend.Close()
}
