// Package catalog fetches the supported-language list from the public
// Judge0 CE listing endpoint. This is a separate, unauthenticated service
// from the execution API; no credential involved.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sakif/snippet-manager/internal/model"
)

// DefaultURL is the hosted listing endpoint.
const DefaultURL = "https://ce.judge0.com/languages/"

// fetchTimeout bounds the listing request. The sync either completes
// quickly or fails outright; it is never retried here.
const fetchTimeout = 5 * time.Second

// Client fetches the language listing.
type Client struct {
	url  string
	http *http.Client
}

// New creates a listing client for the given endpoint; an empty url means
// the hosted default.
func New(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: fetchTimeout},
	}
}

// Languages fetches the full listing. A non-2xx response or a malformed
// body is a hard failure; the error propagates to the caller untouched.
func (c *Client) Languages(ctx context.Context) ([]model.Language, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: building listing request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetching language listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog: listing returned status %d: %s", resp.StatusCode, body)
	}

	var languages []model.Language
	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil {
		return nil, fmt.Errorf("catalog: decoding language listing: %w", err)
	}

	return languages, nil
}
