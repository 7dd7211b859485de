// Package covers cleans cover image URLs, picks fallbacks when a cover cannot
// be loaded and caches downloaded covers on disk.
package covers

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"net/url"
	"strings"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// PlaceholderGlyph is shown when neither the cover nor its fallback loads.
const PlaceholderGlyph = "📖"

const (
	placeholderBuckets = 100
	placeholderURL     = "https://picsum.photos/seed/book-%d/128/192"
	coverByIDURL       = "https://books.google.com/books/content?id=%s&printsec=frontcover&img=1&zoom=1"
)

// Variant selects the URL rules for the execution target.
type Variant int

const (
	// Unconstrained targets keep query parameters apart from known bad ones.
	Unconstrained Variant = iota
	// Constrained targets cannot load covers with query strings or from the
	// cover-by-id endpoint.
	Constrained
)

func (v Variant) String() string {
	if v == Constrained {
		return "constrained"
	}
	return "unconstrained"
}

// Tier reports which step of the resolution chain produced the cover.
type Tier int

const (
	TierPrimary Tier = iota
	TierFallback
	TierPlaceholder
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierFallback:
		return "fallback"
	default:
		return "placeholder"
	}
}

// Loader fetches a cover and returns a local path to it.
type Loader interface {
	Load(ctx context.Context, bookID, coverURL string) (string, error)
}

// Resolution is the outcome of Resolve. URL and Path are empty for the
// placeholder tier, Glyph is set only for it.
type Resolution struct {
	Tier  Tier
	URL   string
	Path  string
	Glyph string
}

type Resolver struct {
	Variant Variant
}

func NewResolver(v Variant) *Resolver {
	return &Resolver{Variant: v}
}

// Clean normalizes a raw cover URL. It returns nil for empty or unparsable
// input.
func (r *Resolver) Clean(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}
	if u.Scheme == "" || u.Scheme == "http" {
		u.Scheme = "https"
	}

	if r.Variant == Constrained {
		u.RawQuery = ""
		u.ForceQuery = false
		u.Fragment = ""
		u.RawFragment = ""
	} else {
		u.RawQuery = cleanQuery(u.RawQuery)
	}

	cleaned := u.String()
	return &cleaned
}

// cleanQuery drops edge=curl and pins zoom to 1, keeping every other
// parameter in place.
func cleanQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	parts := strings.Split(rawQuery, "&")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		switch {
		case key == "edge" && value == "curl":
			continue
		case key == "zoom":
			kept = append(kept, "zoom=1")
		default:
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "&")
}

// Fallback returns the replacement cover URL for a book. The same id always
// gives the same URL.
func (r *Resolver) Fallback(id string) string {
	if r.Variant == Constrained {
		return fmt.Sprintf(placeholderURL, bucket(id))
	}
	return fmt.Sprintf(coverByIDURL, url.QueryEscape(id))
}

func bucket(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32() % placeholderBuckets
}

// Resolve tries the cleaned cover, then the fallback, then settles on the
// placeholder glyph.
func (r *Resolver) Resolve(ctx context.Context, book entities.Book, loader Loader) Resolution {
	if cleaned := r.Clean(entities.FromPtr(book.ImageURL)); cleaned != nil {
		path, err := loader.Load(ctx, book.ID, *cleaned)
		if err == nil {
			return Resolution{Tier: TierPrimary, URL: *cleaned, Path: path}
		}
		log.Printf("[COVERS] Cover for %s failed to load: %v", book.ID, err)
	}

	fallback := r.Fallback(book.ID)
	path, err := loader.Load(ctx, book.ID, fallback)
	if err == nil {
		return Resolution{Tier: TierFallback, URL: fallback, Path: path}
	}
	log.Printf("[COVERS] Fallback cover for %s failed to load: %v", book.ID, err)

	return Resolution{Tier: TierPlaceholder, Glyph: PlaceholderGlyph}
}
