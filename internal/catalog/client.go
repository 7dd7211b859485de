// Package catalog talks to the remote book catalog (Google Books volumes API)
// and maps its payloads onto entities.Book.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mrlokans/bookfinder/internal/entities"
)

const (
	DefaultBaseURL    = "https://www.googleapis.com/books/v1"
	DefaultMaxResults = 20
	userAgent         = "Bookfinder/1.0 (https://github.com/mrlokans/bookfinder)"
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL    string
	APIKey     string
	MaxResults int
	// RequestsPerSecond paces outgoing calls; <= 0 disables pacing.
	RequestsPerSecond float64
	// Timeout bounds a whole request; 0 leaves it to the transport.
	Timeout time.Duration
}

// Client fetches volumes from the catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
	limiter    *rate.Limiter
}

type volumesResponse struct {
	TotalItems int               `json:"totalItems"`
	Items      []json.RawMessage `json:"items"`
}

// NewClient creates a catalog client.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		maxResults: maxResults,
		limiter:    limiter,
	}
}

// Search runs a free-text query. A blank query returns no books and makes no
// request.
func (c *Client) Search(ctx context.Context, query string) ([]entities.Book, error) {
	if strings.TrimSpace(query) == "" {
		return []entities.Book{}, nil
	}

	params := url.Values{}
	params.Set("maxResults", fmt.Sprintf("%d", c.maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	searchURL := fmt.Sprintf("%s/volumes?q=%s&%s", c.baseURL, url.QueryEscape(query), params.Encode())

	var result volumesResponse
	if err := c.getJSON(ctx, searchURL, &result); err != nil {
		return nil, err
	}

	books := make([]entities.Book, 0, len(result.Items))
	for _, item := range result.Items {
		book := FromRemotePayload(item)
		if book.ID == "" {
			continue
		}
		books = append(books, book)
	}
	return books, nil
}

// GetVolume fetches a single volume by its catalog identifier.
func (c *Client) GetVolume(ctx context.Context, id string) (*entities.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("volume id is required")
	}

	volumeURL := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(id))
	if c.apiKey != "" {
		volumeURL += "?key=" + url.QueryEscape(c.apiKey)
	}

	var raw json.RawMessage
	if err := c.getJSON(ctx, volumeURL, &raw); err != nil {
		return nil, err
	}

	book := FromRemotePayload(raw)
	if book.ID == "" {
		book.ID = id
	}
	return &book, nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RemoteError{Err: fmt.Errorf("rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &RemoteError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
