// Package api is the HTTP client for the training API.
// Authentication is entirely caller-supplied: the client attaches whatever
// headers it is given and performs plain GETs, sequentially, with no retries.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorewood/meso/internal/meso"
	"github.com/gorewood/meso/internal/output"
)

// ErrGone marks a mesocycle the server reports as deleted or expired
// (HTTP 410). Callers skip these instead of aborting the run.
var ErrGone = errors.New("resource gone")

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client fetches JSON documents from the training API.
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient HTTPDoer
}

// New creates a client for the given base URL using the supplied auth headers.
func New(baseURL string, requestHeaders map[string]string) *Client {
	return &Client{
		baseURL: baseURL,
		headers: requestHeaders,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(doer HTTPDoer) *Client {
	c.httpClient = doer
	return c
}

// GetJSON performs a GET against the given API path and returns the
// decoded-to-plaintext JSON body. The server sometimes ships compressed
// bodies that the transport does not unwrap (we set Accept-Encoding
// ourselves), so the body is decompressed here when Content-Encoding says so.
func (c *Client) GetJSON(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create request", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read response", err)
	}

	if resp.StatusCode == http.StatusGone {
		return nil, fmt.Errorf("%s: %w", path, ErrGone)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody := string(body)
		if len(errBody) > 500 {
			errBody = errBody[:500]
		}
		return nil, output.NewSystemError(fmt.Sprintf("API error (status %d): %s", resp.StatusCode, errBody))
	}

	return decode(body, resp.Header.Get("Content-Encoding"))
}

// Exercises fetches the exercise catalog. Returns the raw JSON for caching.
func (c *Client) Exercises(ctx context.Context) ([]byte, error) {
	return c.GetJSON(ctx, "/api/training/exercises")
}

// Mesocycles fetches the mesocycle index. Returns the raw JSON plus the
// parsed references.
func (c *Client) Mesocycles(ctx context.Context) ([]byte, []meso.Ref, error) {
	body, err := c.GetJSON(ctx, "/api/training/mesocycles")
	if err != nil {
		return nil, nil, err
	}

	var refs []meso.Ref
	if err := json.Unmarshal(body, &refs); err != nil {
		return nil, nil, output.NewSystemErrorWithCause("failed to parse mesocycle index", err)
	}
	return body, refs, nil
}

// MesocycleDetail fetches the full mesocycle by key. A 410 response
// surfaces as ErrGone so the caller can skip and continue.
func (c *Client) MesocycleDetail(ctx context.Context, key string) ([]byte, *meso.Mesocycle, error) {
	body, err := c.GetJSON(ctx, "/api/training/mesocycles/"+key)
	if err != nil {
		return nil, nil, err
	}

	var m meso.Mesocycle
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, nil, output.NewSystemErrorWithCause("failed to parse mesocycle "+key, err)
	}
	return body, &m, nil
}
