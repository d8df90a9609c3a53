package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// API paths served by the leaderboard service.
const (
	PathBoard = "/api/leaderboard"
	PathReset = "/api/leaderboard/reset"
	PathLive  = "/api/leaderboard/live"
)

// DefaultTimeout bounds every client request.
const DefaultTimeout = 5 * time.Second

// StatusError is returned for non-success HTTP responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("leaderboard: HTTP %d", e.Code)
	}
	return fmt.Sprintf("leaderboard: HTTP %d: %s", e.Code, e.Message)
}

// Client talks to the leaderboard service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for swallowed transport faults.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch returns the current board, at most MaxEntries rows.
func (c *Client) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PathBoard, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching leaderboard: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding leaderboard: %w", err)
	}
	return Cap(entries, MaxEntries), nil
}

// Top is Fetch for display: failures are logged and render as an empty
// board.
func (c *Client) Top(ctx context.Context) []Entry {
	entries, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("leaderboard fetch failed")
		return []Entry{}
	}
	return entries
}

// Submit records a finished game and returns the updated board.
func (c *Client) Submit(ctx context.Context, s Submission) ([]Entry, error) {
	var out SubmitResponse
	code, err := c.postJSON(ctx, PathBoard, s, &out)
	if err != nil {
		return nil, fmt.Errorf("submitting score: %w", err)
	}
	if code != http.StatusOK || !out.OK {
		return nil, &StatusError{Code: code, Message: out.Error}
	}
	return Cap(out.Board, MaxEntries), nil
}

// Reset clears the board. A rejected password is not an error: the
// server's reason comes back in ResetResult.Error.
func (c *Client) Reset(ctx context.Context, password string) (ResetResult, error) {
	var out ResetResult
	code, err := c.postJSON(ctx, PathReset, ResetRequest{Password: password}, &out)
	if err != nil {
		return ResetResult{}, fmt.Errorf("resetting leaderboard: %w", err)
	}
	if !out.OK && out.Error == "" {
		out.Error = http.StatusText(code)
	}
	return out, nil
}

// postJSON sends body and decodes the JSON reply into out regardless of
// status, so error payloads reach the caller.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		}
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}

func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}
