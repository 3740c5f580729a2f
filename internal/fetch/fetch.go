// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves full citation records for a batch of PubMed
// identifiers via the NCBI EFetch endpoint.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// efetchAPIBase is the NCBI EFetch endpoint. Declared as a var so tests
// can substitute an httptest server.
var efetchAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// Client queries the EFetch endpoint.
type Client struct {
	HTTP *http.Client
	Log  *zap.Logger
}

// NewClient returns an EFetch client. A nil logger is replaced with a nop.
func NewClient(httpClient *http.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{HTTP: httpClient, Log: log}
}

// Fetch issues one request covering all ids (comma-joined) and returns the
// raw citation XML. The search stage already bounds the batch, so no
// chunking is needed. A non-success status or transport failure is returned
// as an error; the caller degrades it to an absent document.
func (c *Client) Fetch(ctx context.Context, ids []string, cfg types.FetchConfig) (types.RawDocument, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no identifiers to fetch")
	}

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}
	reqURL := efetchAPIBase + "?" + params.Encode()
	c.Log.Debug("efetch request", zap.String("url", reqURL), zap.Int("ids", len(ids)))

	resp, err := httputil.Get(ctx, c.HTTP, reqURL, cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("EFetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("EFetch returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading EFetch response: %w", err)
	}

	c.Log.Debug("efetch response", zap.Int("bytes", len(body)))
	return types.RawDocument(body), nil
}
