package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookfinder/internal/covers"
	"github.com/mrlokans/bookfinder/internal/entities"
)

type fileLoader struct {
	dir  string
	fail map[string]bool
	urls []string
}

func (f *fileLoader) Load(_ context.Context, bookID, coverURL string) (string, error) {
	f.urls = append(f.urls, coverURL)
	if f.fail[coverURL] {
		return "", errors.New("load failed")
	}
	path := filepath.Join(f.dir, bookID+".jpg")
	if err := os.WriteFile(path, []byte("image:"+coverURL), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type stubLookup map[string]entities.Book

func (s stubLookup) Get(_ context.Context, id string) (entities.Book, bool) {
	b, ok := s[id]
	return b, ok
}

func coversRouter(resolver *covers.Resolver, loader covers.Loader, lookup FavouriteLookup) *gin.Engine {
	router := gin.New()
	router.GET("/api/covers/:id", NewCoversController(resolver, loader, lookup).GetCover)
	return router
}

func getCover(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestCoversController_GetCover(t *testing.T) {
	resolver := covers.NewResolver(covers.Unconstrained)

	t.Run("serves cleaned primary cover", func(t *testing.T) {
		loader := &fileLoader{dir: t.TempDir()}
		router := coversRouter(resolver, loader, nil)

		w := getCover(router, "/api/covers/b1?url=http%3A%2F%2Fimg.test%2Fc.jpg%3Fzoom%3D5")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "primary", w.Header().Get("X-Cover-Source"))
		assert.Equal(t, "image:https://img.test/c.jpg?zoom=1", w.Body.String())
	})

	t.Run("uses stored favourite cover", func(t *testing.T) {
		loader := &fileLoader{dir: t.TempDir()}
		lookup := stubLookup{"b1": {ID: "b1", ImageURL: entities.StringPtr("https://img.test/stored.jpg")}}
		router := coversRouter(resolver, loader, lookup)

		w := getCover(router, "/api/covers/b1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"https://img.test/stored.jpg"}, loader.urls)
	})

	t.Run("falls back when primary fails", func(t *testing.T) {
		loader := &fileLoader{dir: t.TempDir(), fail: map[string]bool{"https://img.test/broken.jpg": true}}
		router := coversRouter(resolver, loader, nil)

		w := getCover(router, "/api/covers/b1?url=https%3A%2F%2Fimg.test%2Fbroken.jpg")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fallback", w.Header().Get("X-Cover-Source"))
		assert.Equal(t, "image:"+resolver.Fallback("b1"), w.Body.String())
	})

	t.Run("placeholder glyph after both fail", func(t *testing.T) {
		loader := &fileLoader{dir: t.TempDir(), fail: map[string]bool{
			"https://img.test/broken.jpg": true,
			resolver.Fallback("b1"):       true,
		}}
		router := coversRouter(resolver, loader, nil)

		w := getCover(router, "/api/covers/b1?url=https%3A%2F%2Fimg.test%2Fbroken.jpg")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "placeholder", w.Header().Get("X-Cover-Source"))
		assert.Equal(t, covers.PlaceholderGlyph, w.Body.String())
	})
}

func TestCoversController_ConstrainedVariant(t *testing.T) {
	resolver := covers.NewResolver(covers.Constrained)
	loader := &fileLoader{dir: t.TempDir()}
	router := coversRouter(resolver, loader, nil)

	w := getCover(router, "/api/covers/b1?url=http%3A%2F%2Fimg.test%2Fc.jpg%3Fzoom%3D5%26edge%3Dcurl")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"https://img.test/c.jpg"}, loader.urls)
}

func TestCoversController_NoCoverFallsBack(t *testing.T) {
	resolver := covers.NewResolver(covers.Constrained)
	loader := &fileLoader{dir: t.TempDir()}
	router := coversRouter(resolver, loader, stubLookup{})

	w := getCover(router, "/api/covers/b1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fallback", w.Header().Get("X-Cover-Source"))
	require.Len(t, loader.urls, 1)
	assert.Equal(t, "https://picsum.photos/seed/book-28/128/192", loader.urls[0])
}
