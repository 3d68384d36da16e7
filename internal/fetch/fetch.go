// Package fetch downloads the raw catalog file. This is the one blocking
// operation of an extraction: it runs once, fully completes or fails before
// any parsing begins, and its failures are hard failures that abort the
// whole call.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodySize caps how much of a response is read. Catalog exports are small;
// anything beyond this is not one.
const maxBodySize = 64 << 20 // 64 MiB

// Fetcher performs single synchronous downloads with a per-request timeout.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// New creates a Fetcher with the given per-request timeout.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Get downloads the resource and returns its raw bytes. Transport errors and
// non-2xx statuses are returned as errors; there is no retry and no caching.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty source url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
