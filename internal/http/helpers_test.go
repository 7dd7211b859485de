package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/favorites"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequireParam(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "zyTCAlFPjgYC"}}

	id, ok := requireParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, "zyTCAlFPjgYC", id)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	_, ok = requireParam(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "id is required")
}

func TestRespondFavoritesError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"invalid book", favorites.ErrInvalidBook, http.StatusBadRequest, codeInvalidBook},
		{"unavailable", favorites.ErrStorageUnavailable, http.StatusServiceUnavailable, codeStorageUnavailable},
		{"write error", &favorites.StorageWriteError{Op: "insert", Err: errors.New("disk full")}, http.StatusInternalServerError, codeStorageWriteError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondFavoritesError(c, tt.err, "test")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decodeError(t, w).Code)
		})
	}
}

func TestRespondFavoritesError_UnavailableMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondFavoritesError(c, favorites.ErrStorageUnavailable, "add")

	assert.Equal(t, "favorites unavailable on this platform", decodeError(t, w).Error)
}

func TestRespondRemoteError(t *testing.T) {
	t.Run("status error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondRemoteError(c, &catalog.RemoteError{StatusCode: 500})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, codeRemoteError, resp.Code)
		assert.Equal(t, map[string]any{"status": float64(500)}, resp.Details)
	})

	t.Run("transport error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondRemoteError(c, &catalog.RemoteError{Err: errors.New("connection reset")})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, map[string]any{"status": float64(0), "transport": true}, decodeError(t, w).Details)
	})

	t.Run("non-remote error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondRemoteError(c, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSuccessHelpers(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondSuccess(c, "done")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"done"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	respondAccepted(c, "queued", gin.H{"task_id": "t1"})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"message":"queued","data":{"task_id":"t1"}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	respondNotFound(c, "book")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"book not found"}`, w.Body.String())
}
