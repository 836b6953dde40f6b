// Package judge0 implements executor.Runner against the Judge0 CE API.
//
// Per submission the flow is submit → poll → done: one POST creates the job
// and returns a token, then the status is fetched repeatedly while the job
// reports queued (1) or running (2). Any other status is terminal: the
// client does not distinguish success from failure, it hands the raw
// resource back to the caller.
//
// The original service contract is "call, block, return" with no bound on
// the poll loop. We keep the blocking shape but make the loop cancellable
// through the context and cap it with a configurable overall deadline; only
// the status fetch is ever retried, never the submission.
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/snippet-manager/internal/apperror"
	"github.com/sakif/snippet-manager/internal/executor"
)

// Job statuses that mean "keep polling".
const (
	statusQueued  = 1
	statusRunning = 2
)

// Config holds the client settings. APIKey may be empty: the client still
// constructs, and Execute fails with the missing-credential condition so
// the caller can tell the user to configure it.
type Config struct {
	BaseURL      string
	Host         string // value for the X-RapidAPI-Host header
	APIKey       string
	PollInterval time.Duration
	MaxWait      time.Duration // overall deadline for one Execute call
}

// DefaultConfig returns the settings for the hosted Judge0 CE endpoint.
func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL:      "https://judge0-ce.p.rapidapi.com",
		Host:         "judge0-ce.p.rapidapi.com",
		APIKey:       apiKey,
		PollInterval: 500 * time.Millisecond,
		MaxWait:      90 * time.Second,
	}
}

// Client talks to the Judge0 CE API.
type Client struct {
	config Config
	http   *http.Client
	logger *slog.Logger
}

var _ executor.Runner = (*Client)(nil)

// New creates a Judge0 client. Missing credentials are not an error here;
// they become one when an execution is attempted.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 90 * time.Second
	}
	return &Client{
		config: cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

type createRequest struct {
	SourceCode   string `json:"source_code"`
	LanguageID   int64  `json:"language_id"`
	NumberOfRuns int    `json:"number_of_runs"`
}

type submission struct {
	Token  string `json:"token"`
	Status struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

// Submit creates a submission and returns the server-assigned job token.
func (c *Client) Submit(ctx context.Context, req executor.Request) (string, error) {
	runs := req.Runs
	if runs <= 0 {
		runs = 1
	}

	body, err := json.Marshal(createRequest{
		SourceCode:   req.SourceCode,
		LanguageID:   req.LanguageID,
		NumberOfRuns: runs,
	})
	if err != nil {
		return "", fmt.Errorf("judge0: encoding submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/submissions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("judge0: building submission request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(httpReq)

	raw, err := c.do(httpReq)
	if err != nil {
		return "", err
	}

	var sub submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return "", fmt.Errorf("judge0: decoding submission response: %w", err)
	}
	if sub.Token == "" {
		return "", fmt.Errorf("judge0: submission response has no token: %s", raw)
	}

	return sub.Token, nil
}

// FetchStatus retrieves the full job resource by token. The parsed status id
// is returned alongside the raw body so result fields pass through untouched.
func (c *Client) FetchStatus(ctx context.Context, token string) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"/submissions/"+token, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("judge0: building status request: %w", err)
	}
	c.setAuthHeaders(httpReq)

	raw, err := c.do(httpReq)
	if err != nil {
		return 0, nil, err
	}

	var sub submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return 0, nil, fmt.Errorf("judge0: decoding job %s: %w", token, err)
	}

	return sub.Status.ID, raw, nil
}

// Execute submits the code and blocks until the job reaches a terminal
// status, then returns the final resource pretty-printed.
//
// Exactly one create call happens per Execute; the poll loop only refetches
// status. The loop stops when ctx is cancelled or MaxWait elapses.
func (c *Client) Execute(ctx context.Context, req executor.Request) (*executor.Result, error) {
	if c.config.APIKey == "" {
		return nil, apperror.MissingCredential("RAPIDAPI_KEY")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.MaxWait)
	defer cancel()

	token, err := c.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	c.logger.Info("submission created",
		slog.String("token", token),
		slog.Int64("languageID", req.LanguageID),
	)

	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for {
		statusID, raw, err := c.FetchStatus(ctx, token)
		if err != nil {
			return nil, err
		}

		if statusID != statusQueued && statusID != statusRunning {
			pretty, err := formatJSON(raw)
			if err != nil {
				return nil, fmt.Errorf("judge0: formatting job %s: %w", token, err)
			}
			c.logger.Info("submission finished",
				slog.String("token", token),
				slog.Int("status", statusID),
			)
			return &executor.Result{StatusID: statusID, Raw: pretty}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("judge0: waiting for job %s: %w", token, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-RapidAPI-Key", c.config.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.config.Host)
}

// do runs the request and returns the body. Non-2xx responses are hard
// failures carrying the remote body verbatim, without retry.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge0: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("judge0: reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("judge0: %s %s: unexpected status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, body)
	}

	return body, nil
}

func formatJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
