package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/favorites"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Machine-readable error codes.
const (
	codeRemoteError        = "remote_error"
	codeStorageUnavailable = "storage_unavailable"
	codeStorageWriteError  = "storage_write_error"
	codeInvalidBook        = "invalid_book"
	codeTasksDisabled      = "tasks_disabled"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code and code.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// respondRemoteError maps a catalog failure to 502 Bad Gateway.
func respondRemoteError(c *gin.Context, err error) {
	var remote *catalog.RemoteError
	if !errors.As(err, &remote) {
		respondInternalError(c, err, "catalog request")
		return
	}

	log.Printf("Catalog error: %v", remote)
	details := gin.H{"status": remote.StatusCode}
	if remote.IsTransport() {
		details["transport"] = true
	}
	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   "book catalog request failed",
		Code:    codeRemoteError,
		Details: details,
	})
}

// respondFavoritesError maps favourites write failures to HTTP responses.
func respondFavoritesError(c *gin.Context, err error, context string) {
	var writeErr *favorites.StorageWriteError
	switch {
	case errors.Is(err, favorites.ErrInvalidBook):
		respondError(c, http.StatusBadRequest, codeInvalidBook, err.Error())
	case errors.Is(err, favorites.ErrStorageUnavailable):
		respondError(c, http.StatusServiceUnavailable, codeStorageUnavailable, err.Error())
	case errors.As(err, &writeErr):
		log.Printf("Favourites write error (%s): %v", context, err)
		respondError(c, http.StatusInternalServerError, codeStorageWriteError, "could not save favourites")
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// requireParam extracts a non-empty path parameter.
// Responds with a 400 error and returns "", false when it is missing.
func requireParam(c *gin.Context, paramName string) (string, bool) {
	value := c.Param(paramName)
	if value == "" {
		respondBadRequest(c, paramName+" is required")
		return "", false
	}
	return value, true
}
