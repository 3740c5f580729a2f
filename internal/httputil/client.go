// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// DefaultTimeout bounds each network call when the configuration does not
// set one. The NCBI endpoints have no server-side deadline we can rely on.
const DefaultTimeout = 30 * time.Second

// NewClient returns an HTTP client honoring cfg.Timeout, falling back to
// DefaultTimeout when unset.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Get issues a GET request for url with the configured User-Agent. The
// caller is responsible for closing the response body. Each stage makes a
// single call per run; there is no retry.
func Get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	return client.Do(req)
}
