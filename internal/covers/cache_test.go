package covers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestNewCache(t *testing.T) {
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "covers")

	cache, err := NewCache(cacheDir)
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}

	if cache.CacheDir() != cacheDir {
		t.Errorf("expected cache dir %s, got %s", cacheDir, cache.CacheDir())
	}

	// Verify directory was created
	if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
		t.Error("cache directory was not created")
	}
}

func TestGetCover_EmptyURL(t *testing.T) {
	cache, _ := NewCache(t.TempDir())

	path, err := cache.GetCover(context.Background(), "vol-1", "")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path for empty URL, got %s", path)
	}
}

func TestGetCover_FetchAndCache(t *testing.T) {
	// Create a test server that serves an image
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("fake image data"))
	}))
	defer server.Close()

	cache, _ := NewCache(t.TempDir())

	path1, err := cache.GetCover(context.Background(), "vol-1", server.URL+"/cover.jpg")
	if err != nil {
		t.Fatalf("GetCover failed: %v", err)
	}
	if path1 == "" {
		t.Fatal("expected non-empty path")
	}

	if _, err := os.Stat(path1); os.IsNotExist(err) {
		t.Error("cached file does not exist")
	}

	path2, err := cache.GetCover(context.Background(), "vol-1", server.URL+"/cover.jpg")
	if err != nil {
		t.Fatalf("GetCover (cached) failed: %v", err)
	}
	if path1 != path2 {
		t.Error("expected same path for cached request")
	}
}

func TestGetCover_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cache, _ := NewCache(t.TempDir())

	_, err := cache.GetCover(context.Background(), "vol-1", server.URL+"/notfound.jpg")
	if err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestInvalidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("fake image data"))
	}))
	defer server.Close()

	cache, _ := NewCache(t.TempDir())

	path, err := cache.GetCover(context.Background(), "vol-1", server.URL+"/cover.jpg")
	if err != nil {
		t.Fatalf("GetCover failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("cached file does not exist")
	}

	err = cache.Invalidate("vol-1")
	if err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cached file should be deleted after invalidation")
	}
}

func TestCoverFilename(t *testing.T) {
	cache, _ := NewCache(t.TempDir())

	// Same URL should give same filename
	name1 := cache.coverFilename("vol-1", "https://example.com/cover.jpg")
	name2 := cache.coverFilename("vol-1", "https://example.com/cover.jpg")
	if name1 != name2 {
		t.Error("same inputs should produce same filename")
	}

	// Different URL should give different filename
	name3 := cache.coverFilename("vol-1", "https://example.com/other.jpg")
	if name1 == name3 {
		t.Error("different URLs should produce different filenames")
	}

	// Different book ID should give different filename
	name4 := cache.coverFilename("vol-2", "https://example.com/cover.jpg")
	if name1 == name4 {
		t.Error("different book IDs should produce different filenames")
	}
}

func TestGetCover_ServedFromDiskOnceCached(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("fake image data"))
	}))
	defer server.Close()

	cache, _ := NewCache(t.TempDir())
	for i := 0; i < 3; i++ {
		if _, err := cache.GetCover(context.Background(), "vol-1", server.URL+"/cover.jpg"); err != nil {
			t.Fatalf("GetCover failed: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("expected 1 fetch, got %d", hits)
	}
}

func TestInvalidate_LeavesOtherBooks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fake image data"))
	}))
	defer server.Close()

	cache, _ := NewCache(t.TempDir())
	ctx := context.Background()
	first, _ := cache.GetCover(ctx, "vol-1", server.URL+"/a.jpg")
	second, _ := cache.GetCover(ctx, "vol-2", server.URL+"/b.jpg")

	if err := cache.Invalidate("vol-1"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Error("vol-1 cover should be deleted")
	}
	if _, err := os.Stat(second); err != nil {
		t.Error("vol-2 cover should survive")
	}
}

func TestLoad_EmptyURLFails(t *testing.T) {
	cache, _ := NewCache(t.TempDir())
	if _, err := cache.Load(context.Background(), "vol-1", ""); err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestGetCover_IDWithPathSeparators(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fake image data"))
	}))
	defer server.Close()

	cache, _ := NewCache(t.TempDir())
	path, err := cache.GetCover(context.Background(), "../../etc/passwd", server.URL+"/c.jpg")
	if err != nil {
		t.Fatalf("GetCover failed: %v", err)
	}
	if filepath.Dir(path) != cache.CacheDir() {
		t.Errorf("cover escaped the cache dir: %s", path)
	}
}
