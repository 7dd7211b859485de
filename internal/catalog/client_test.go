package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Options{BaseURL: baseURL, MaxResults: 20})
}

func TestSearch(t *testing.T) {
	var gotQuery, gotMax string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotQuery = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 2,
			"items": [
				{"id": "b1", "volumeInfo": {"title": "Dune", "authors": ["Frank Herbert"]}},
				{"id": "b2", "volumeInfo": {"title": "Dune Messiah"}},
				{"volumeInfo": {"title": "No identifier"}}
			]
		}`))
	}))
	defer server.Close()

	books, err := newTestClient(server.URL).Search(context.Background(), "dune & friends")
	require.NoError(t, err)

	assert.Equal(t, "dune & friends", gotQuery)
	assert.Equal(t, "20", gotMax)
	require.Len(t, books, 2)
	assert.Equal(t, "b1", books[0].ID)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "b2", books[1].ID)
	assert.Empty(t, books[1].Authors)
}

func TestSearch_BlankQueryMakesNoRequest(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for _, q := range []string{"", " ", "\t\n  "} {
		books, err := client.Search(context.Background(), q)
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestSearch_NoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer server.Close()

	books, err := newTestClient(server.URL).Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestSearch_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	books, err := newTestClient(server.URL).Search(context.Background(), "dune")
	assert.Nil(t, books)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
	assert.False(t, remoteErr.IsTransport())
}

func TestSearch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := newTestClient(baseURL).Search(context.Background(), "dune")

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.True(t, remoteErr.IsTransport())
	assert.Equal(t, 0, remoteErr.StatusCode)
}

func TestSearch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).Search(ctx, "dune")

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.True(t, remoteErr.IsTransport())
}

func TestSearch_MalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "dune")

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusOK, remoteErr.StatusCode)
}

func TestSearch_SendsAPIKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, APIKey: "secret"})
	_, err := client.Search(context.Background(), "dune")
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
}

func TestGetVolume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/volumes/b1" {
			_, _ = w.Write([]byte(`{"id": "b1", "volumeInfo": {"title": "Dune"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	book, err := client.GetVolume(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)

	_, err = client.GetVolume(context.Background(), "missing")
	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)

	_, err = client.GetVolume(context.Background(), " ")
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Options{})

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultMaxResults, client.maxResults)
}

func TestRateLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, RequestsPerSecond: 20})

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Search(context.Background(), "dune")
		require.NoError(t, err)
	}

	// burst of one, then one request every 50ms
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}
