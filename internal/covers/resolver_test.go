package covers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookfinder/internal/entities"
)

func TestClean_Unconstrained(t *testing.T) {
	r := NewResolver(Unconstrained)

	tests := []struct {
		name string
		raw  string
		want *string
	}{
		{"zoom normalized", "http://example.com/cover.jpg?zoom=5", entities.StringPtr("https://example.com/cover.jpg?zoom=1")},
		{"edge curl removed, order kept", "http://books.google.com/c?id=x&printsec=frontcover&img=1&zoom=2&edge=curl&source=gbs_api",
			entities.StringPtr("https://books.google.com/c?id=x&printsec=frontcover&img=1&zoom=1&source=gbs_api")},
		{"other edge values kept", "https://example.com/c?edge=flat", entities.StringPtr("https://example.com/c?edge=flat")},
		{"https untouched", "https://example.com/cover.jpg", entities.StringPtr("https://example.com/cover.jpg")},
		{"only edge curl", "http://example.com/c?edge=curl", entities.StringPtr("https://example.com/c")},
		{"surrounding space", "  http://example.com/c.jpg ", entities.StringPtr("https://example.com/c.jpg")},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"no host", "not a url", nil},
		{"unparsable", "http://[::1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Clean(tt.raw))
		})
	}
}

func TestClean_Constrained(t *testing.T) {
	r := NewResolver(Constrained)

	assert.Equal(t, entities.StringPtr("https://example.com/cover.jpg"),
		r.Clean("http://example.com/cover.jpg?zoom=5&edge=curl"))
	assert.Equal(t, entities.StringPtr("https://example.com/cover.jpg"),
		r.Clean("https://example.com/cover.jpg#frag"))
	assert.Nil(t, r.Clean(""))
}

func TestFallback(t *testing.T) {
	constrained := NewResolver(Constrained)

	first := constrained.Fallback("b1")
	assert.Equal(t, first, constrained.Fallback("b1"))
	assert.Regexp(t, `^https://picsum\.photos/seed/book-\d{1,2}/128/192$`, first)

	assert.Equal(t, "https://picsum.photos/seed/book-28/128/192", first)
	assert.Less(t, bucket("some-long-volume-id"), uint32(placeholderBuckets))

	unconstrained := NewResolver(Unconstrained)
	assert.Equal(t,
		"https://books.google.com/books/content?id=zyTCAlFPjgYC&printsec=frontcover&img=1&zoom=1",
		unconstrained.Fallback("zyTCAlFPjgYC"))
	assert.Equal(t,
		"https://books.google.com/books/content?id=a+b%26c&printsec=frontcover&img=1&zoom=1",
		unconstrained.Fallback("a b&c"))
}

type stubLoader struct {
	fail  map[string]bool
	calls []string
}

func (s *stubLoader) Load(_ context.Context, _ string, coverURL string) (string, error) {
	s.calls = append(s.calls, coverURL)
	if s.fail[coverURL] {
		return "", errors.New("load failed")
	}
	return "/cache/" + coverURL, nil
}

func TestResolve_Chain(t *testing.T) {
	r := NewResolver(Unconstrained)
	book := entities.Book{ID: "b1", Title: "Dune", ImageURL: entities.StringPtr("http://img.test/c.jpg?zoom=3")}
	primary := "https://img.test/c.jpg?zoom=1"
	fallback := r.Fallback("b1")

	t.Run("primary", func(t *testing.T) {
		loader := &stubLoader{}
		res := r.Resolve(context.Background(), book, loader)
		assert.Equal(t, TierPrimary, res.Tier)
		assert.Equal(t, primary, res.URL)
		assert.Equal(t, []string{primary}, loader.calls)
	})

	t.Run("fallback after primary failure", func(t *testing.T) {
		loader := &stubLoader{fail: map[string]bool{primary: true}}
		res := r.Resolve(context.Background(), book, loader)
		assert.Equal(t, TierFallback, res.Tier)
		assert.Equal(t, fallback, res.URL)
		assert.Equal(t, "/cache/"+fallback, res.Path)
		assert.Equal(t, []string{primary, fallback}, loader.calls)
	})

	t.Run("glyph after both fail", func(t *testing.T) {
		loader := &stubLoader{fail: map[string]bool{primary: true, fallback: true}}
		res := r.Resolve(context.Background(), book, loader)
		assert.Equal(t, Resolution{Tier: TierPlaceholder, Glyph: PlaceholderGlyph}, res)
		assert.Len(t, loader.calls, 2)
	})

	t.Run("no cover goes straight to fallback", func(t *testing.T) {
		loader := &stubLoader{}
		res := r.Resolve(context.Background(), entities.Book{ID: "b1"}, loader)
		assert.Equal(t, TierFallback, res.Tier)
		assert.Equal(t, []string{fallback}, loader.calls)
	})
}

func TestTierAndVariantString(t *testing.T) {
	assert.Equal(t, "primary", TierPrimary.String())
	assert.Equal(t, "fallback", TierFallback.String())
	assert.Equal(t, "placeholder", TierPlaceholder.String())
	assert.Equal(t, "constrained", Constrained.String())
	assert.Equal(t, "unconstrained", Unconstrained.String())
}
