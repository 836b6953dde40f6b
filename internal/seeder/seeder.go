// Package seeder fetches throwaway credentials from a public fake-data
// service, used to populate a development database with plausible users.
package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL asks for ten users per call, matching what the admin seeding
// action has always inserted.
const DefaultURL = "https://fakerapi.it/api/v1/users?_quantity=10&_locale=uk_UA"

// Credential is one generated username/password pair.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Client fetches generated credentials.
type Client struct {
	url  string
	http *http.Client
}

// New creates a seeding client; an empty url means the hosted default.
func New(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch returns the service's generated credentials.
func (c *Client) Fetch(ctx context.Context) ([]Credential, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("seeder: building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seeder: fetching users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("seeder: service returned status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Data []Credential `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("seeder: decoding users: %w", err)
	}

	return payload.Data, nil
}
