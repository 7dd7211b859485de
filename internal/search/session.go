// Package search drives interactive catalog searches: input is debounced and
// only the latest query's response is published.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// Searcher is the remote catalog dependency.
type Searcher interface {
	Search(ctx context.Context, query string) ([]entities.Book, error)
}

// Snapshot is the state a UI renders.
type Snapshot struct {
	Query      string
	Results    []entities.Book
	Loading    bool
	ErrMessage string
	Err        error
}

// Session holds the current query and its results.
type Session struct {
	searcher  Searcher
	debouncer *Debouncer

	mu       sync.Mutex
	state    Snapshot
	onChange func(Snapshot)
}

func NewSession(searcher Searcher, quiet time.Duration) *Session {
	return &Session{
		searcher:  searcher,
		debouncer: NewDebouncer(quiet),
		state:     Snapshot{Results: []entities.Book{}},
	}
}

// OnChange registers a callback invoked with every published state. It runs
// on the goroutine that changed the state, so deliveries from Input and from a
// finished search may interleave; Snapshot always returns the latest state.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Input records the latest query text. A blank query clears the results at
// once; anything else is searched after the quiet interval.
func (s *Session) Input(query string) {
	if strings.TrimSpace(query) == "" {
		s.debouncer.Stop()
		s.publish(Snapshot{Query: query, Results: []entities.Book{}})
		return
	}

	s.mu.Lock()
	s.debouncer.Schedule(func(ctx context.Context, gen uint64) {
		s.run(ctx, gen, query)
	})
	s.state.Query = query
	s.state.Loading = true
	fn := s.onChange
	snap := copySnapshot(s.state)
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

func (s *Session) run(ctx context.Context, gen uint64, query string) {
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) || !s.debouncer.IsCurrent(gen) {
			return
		}
		log.Printf("[SEARCH] Search for %q failed: %v", query, err)
		s.publishIfCurrent(gen, Snapshot{Query: query, Results: []entities.Book{}, ErrMessage: errorMessage(err), Err: err})
		return
	}
	s.publishIfCurrent(gen, Snapshot{Query: query, Results: results})
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySnapshot(s.state)
}

// Close abandons any pending search.
func (s *Session) Close() {
	s.debouncer.Stop()
}

func (s *Session) publish(next Snapshot) {
	s.publishIfCurrent(0, next)
}

// publishIfCurrent stores next unless gen is non-zero and has been superseded.
func (s *Session) publishIfCurrent(gen uint64, next Snapshot) {
	s.mu.Lock()
	if gen != 0 && !s.debouncer.IsCurrent(gen) {
		s.mu.Unlock()
		return
	}
	s.state = next
	fn := s.onChange
	snap := copySnapshot(next)
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

func copySnapshot(in Snapshot) Snapshot {
	out := in
	out.Results = make([]entities.Book, len(in.Results))
	copy(out.Results, in.Results)
	return out
}

func errorMessage(err error) string {
	var remote *catalog.RemoteError
	if errors.As(err, &remote) {
		if remote.IsTransport() {
			return "Search failed: could not reach the catalog"
		}
		return fmt.Sprintf("Search failed: catalog returned status %d", remote.StatusCode)
	}
	return "Search failed: " + err.Error()
}
