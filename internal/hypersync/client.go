package hypersync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrServiceUnavailable marks a failed or rejected call to the indexing
// service. The harvest surfaces it to the caller without retrying.
var ErrServiceUnavailable = errors.New("indexing service unavailable")

const defaultTimeout = 30 * time.Second

// Config holds client settings. BearerToken is optional; without it the
// service answers in rate-limited unauthenticated mode.
type Config struct {
	URL         string
	BearerToken string
	Timeout     time.Duration
}

// Client talks to a HyperSync-style indexing service over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("service url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.BearerToken,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Query requests one page of logs and transactions.
func (c *Client) Query(ctx context.Context, query Query) (*QueryResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrServiceUnavailable, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrServiceUnavailable, err)
	}

	out := &QueryResponse{
		NextBlock:     wire.NextBlock,
		ArchiveHeight: wire.ArchiveHeight,
	}
	for _, batch := range wire.Data {
		for _, log := range batch.Logs {
			out.Logs = append(out.Logs, log.toRawLog())
		}
		out.Transactions = append(out.Transactions, batch.Transactions...)
	}

	return out, nil
}
