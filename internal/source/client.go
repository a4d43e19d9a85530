// Package source talks to the bookmark provider that holds the user's saved
// articles. The pipeline treats the provider as read-only: processed items
// are never archived or marked read upstream.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"readcast/internal/model"
)

// maxContentSize caps a fetched article body (5 MB).
const maxContentSize = 5 * 1024 * 1024

// Client lists saved items and fetches their raw content.
type Client interface {
	// List returns saved items, optionally filtered by a single tag.
	// An empty tag returns everything.
	List(ctx context.Context, tag string) ([]model.SourceItem, error)

	// FetchContent returns the raw HTML (or text) for one item.
	FetchContent(ctx context.Context, id string) (string, error)
}

// HTTPClient implements Client against the provider's JSON API using a
// bearer token.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the HTTP client.
type Option func(*HTTPClient)

// WithHTTPClient overrides the default HTTP client (used in tests).
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.httpClient = c
		}
	}
}

// NewHTTPClient creates a provider client for the given API base URL.
func NewHTTPClient(baseURL, token string, opts ...Option) *HTTPClient {
	h := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// itemPayload mirrors the provider's item JSON.
type itemPayload struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Tags  []string `json:"tags"`
}

// List fetches saved items from GET /items, optionally filtered by tag.
func (h *HTTPClient) List(ctx context.Context, tag string) ([]model.SourceItem, error) {
	endpoint := h.baseURL + "/items"
	if tag != "" {
		endpoint += "?tag=" + url.QueryEscape(tag)
	}

	raw, err := h.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %w", model.ErrSourceUnavailable, err)
	}

	var payload []itemPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode item list: %w", model.ErrSourceUnavailable, err)
	}

	items := make([]model.SourceItem, 0, len(payload))
	for _, p := range payload {
		if p.ID == "" {
			continue
		}
		items = append(items, model.SourceItem{
			ID:        p.ID,
			Title:     p.Title,
			SourceURL: p.URL,
			Tags:      p.Tags,
		})
	}
	return items, nil
}

// FetchContent fetches the raw article body from GET /items/{id}/content.
func (h *HTTPClient) FetchContent(ctx context.Context, id string) (string, error) {
	endpoint := h.baseURL + "/items/" + url.PathEscape(id) + "/content"
	raw, err := h.get(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: fetch content for %s: %w", model.ErrSourceUnavailable, id, err)
	}
	return string(raw), nil
}

func (h *HTTPClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxContentSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
