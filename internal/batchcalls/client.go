package batchcalls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"campaign-console/internal/config"
)

var (
	ErrNotFound = errors.New("batch call not found")
	ErrUpstream = errors.New("dialer backend error")
)

// Client talks to the external batch-calling backend.
//
// Rules:
// - No dialer HTTP details outside this adapter.
// - The backend is the source of truth: callers re-fetch after mutations
//   instead of patching local state.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.DialerConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type listResponse struct {
	BatchCalls []BatchCall `json:"batch_calls"`
}

// List fetches all campaigns.
func (c *Client) List(ctx context.Context) ([]BatchCall, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodGet, "/api/batch-calls", &out); err != nil {
		return nil, err
	}
	if out.BatchCalls == nil {
		return []BatchCall{}, nil
	}
	return out.BatchCalls, nil
}

// Get fetches one campaign with its recipients.
func (c *Client) Get(ctx context.Context, id string) (BatchCall, error) {
	if strings.TrimSpace(id) == "" {
		return BatchCall{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	var out BatchCall
	if err := c.do(ctx, http.MethodGet, "/api/batch-calls/"+url.PathEscape(id), &out); err != nil {
		return BatchCall{}, err
	}
	return out, nil
}

// Cancel asks the backend to cancel a campaign.
func (c *Client) Cancel(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrNotFound)
	}
	return c.do(ctx, http.MethodDelete, "/api/batch-calls/"+url.PathEscape(id), nil)
}

// Retry asks the backend to re-dispatch failed recipients of a campaign.
func (c *Client) Retry(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrNotFound)
	}
	return c.do(ctx, http.MethodPost, "/api/batch-calls/"+url.PathEscape(id)+"/retry", nil)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		// Read a bounded slice of the body for the error detail.
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return nil
}
