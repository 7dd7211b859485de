package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"slices"
	"sync"

	"github.com/mrlokans/bookfinder/internal/entities"
	"github.com/mrlokans/bookfinder/internal/prefs"
)

const (
	keyFavoriteIDs   = "favorite_ids"
	keyFavoriteBooks = "favorite_books"
)

// PreferenceBackend keeps favourites in a preference store as an ordered id
// list plus an id to record JSON map. Every operation is a read-modify-write
// of those two entries and reports failure as false or an empty result.
type PreferenceBackend struct {
	mu    sync.Mutex
	store prefs.Store
}

func NewPreferenceBackend(store prefs.Store) *PreferenceBackend {
	return &PreferenceBackend{store: store}
}

func (b *PreferenceBackend) ids() ([]string, error) {
	ids, err := b.store.GetStringList(keyFavoriteIDs)
	if errors.Is(err, prefs.ErrNotFound) {
		return []string{}, nil
	}
	return ids, err
}

func (b *PreferenceBackend) records() (map[string]entities.StoredBook, error) {
	raw, err := b.store.GetString(keyFavoriteBooks)
	if errors.Is(err, prefs.ErrNotFound) {
		return map[string]entities.StoredBook{}, nil
	}
	if err != nil {
		return nil, err
	}

	records := map[string]entities.StoredBook{}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (b *PreferenceBackend) saveRecords(records map[string]entities.StoredBook) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return b.store.SetString(keyFavoriteBooks, string(data))
}

// Add upserts the record and appends the id if absent. The record map is
// written first and restored when the id list cannot be saved. An unreadable
// record map is never overwritten.
func (b *PreferenceBackend) Add(_ context.Context, book entities.Book) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids, err := b.ids()
	if err != nil {
		log.Printf("[FAVORITES] Failed to read favourite ids: %v", err)
		return false
	}
	records, err := b.records()
	if err != nil {
		log.Printf("[FAVORITES] Refusing to overwrite unreadable favourite records: %v", err)
		return false
	}
	previous, hadPrevious := records[book.ID]

	records[book.ID] = entities.ToStored(book)
	if err := b.saveRecords(records); err != nil {
		log.Printf("[FAVORITES] Failed to save favourite %s: %v", book.ID, err)
		return false
	}

	if slices.Contains(ids, book.ID) {
		return true
	}
	if err := b.store.SetStringList(keyFavoriteIDs, append(ids, book.ID)); err != nil {
		log.Printf("[FAVORITES] Failed to save favourite ids: %v", err)
		if hadPrevious {
			records[book.ID] = previous
		} else {
			delete(records, book.ID)
		}
		b.restoreRecords(records)
		return false
	}
	return true
}

// Remove deletes the record and drops the id from the list. The record map is
// written first and restored when the id list cannot be saved.
func (b *PreferenceBackend) Remove(_ context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids, err := b.ids()
	if err != nil {
		log.Printf("[FAVORITES] Failed to read favourite ids: %v", err)
		return false
	}

	// an unreadable map only loses its id entry
	records, err := b.records()
	if err != nil {
		log.Printf("[FAVORITES] Favourite records unreadable, removing id only: %v", err)
		records = nil
	}

	previous, hadPrevious := records[id]
	if hadPrevious {
		delete(records, id)
		if err := b.saveRecords(records); err != nil {
			log.Printf("[FAVORITES] Failed to remove favourite %s: %v", id, err)
			return false
		}
	}

	if !slices.Contains(ids, id) {
		return true
	}
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if err := b.store.SetStringList(keyFavoriteIDs, kept); err != nil {
		log.Printf("[FAVORITES] Failed to save favourite ids: %v", err)
		if hadPrevious {
			records[id] = previous
			b.restoreRecords(records)
		}
		return false
	}
	return true
}

func (b *PreferenceBackend) restoreRecords(records map[string]entities.StoredBook) {
	if err := b.saveRecords(records); err != nil {
		log.Printf("[FAVORITES] Failed to restore favourite records: %v", err)
	}
}

// GetAll returns the favourites in insertion order. Ids without a record are
// skipped.
func (b *PreferenceBackend) GetAll(_ context.Context) []entities.Book {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids, err := b.ids()
	if err != nil {
		log.Printf("[FAVORITES] Failed to read favourite ids: %v", err)
		return []entities.Book{}
	}
	records, err := b.records()
	if err != nil {
		log.Printf("[FAVORITES] Failed to read favourite records: %v", err)
		return []entities.Book{}
	}

	books := make([]entities.Book, 0, len(ids))
	for _, id := range ids {
		record, ok := records[id]
		if !ok {
			continue
		}
		books = append(books, entities.FromStored(record))
	}
	return books
}

func (b *PreferenceBackend) IsFavorite(_ context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids, err := b.ids()
	if err != nil {
		log.Printf("[FAVORITES] Failed to read favourite ids: %v", err)
		return false
	}
	return slices.Contains(ids, id)
}

// Clear removes both entries.
func (b *PreferenceBackend) Clear(_ context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.store.Remove(keyFavoriteIDs); err != nil {
		log.Printf("[FAVORITES] Failed to clear favourite ids: %v", err)
		return false
	}
	if err := b.store.Remove(keyFavoriteBooks); err != nil {
		log.Printf("[FAVORITES] Failed to clear favourite records: %v", err)
		return false
	}
	return true
}
