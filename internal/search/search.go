// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search resolves a free-text query to PubMed identifiers via the
// NCBI ESearch endpoint.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// esearchAPIBase is the NCBI ESearch endpoint. Declared as a var so tests
// can substitute an httptest server.
var esearchAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

// defaultMaxResults caps the number of identifiers requested per run.
const defaultMaxResults = 10

// Client queries the ESearch endpoint.
type Client struct {
	HTTP *http.Client
	Log  *zap.Logger
}

// NewClient returns an ESearch client. A nil logger is replaced with a nop.
func NewClient(httpClient *http.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{HTTP: httpClient, Log: log}
}

// IDs resolves term to an ordered list of PMIDs, at most cfg.MaxResults
// (default 10), in the relevance order the service returns. A non-success
// status or transport failure is returned as an error; the caller degrades
// it to an empty result.
func (c *Client) IDs(ctx context.Context, term string, cfg types.SearchConfig) ([]string, error) {
	if term == "" {
		return nil, fmt.Errorf("empty search term")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmode": {"json"},
		"retmax":  {fmt.Sprintf("%d", maxResults)},
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}
	reqURL := esearchAPIBase + "?" + params.Encode()
	c.Log.Debug("esearch request", zap.String("url", reqURL))

	resp, err := httputil.Get(ctx, c.HTTP, reqURL, cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("ESearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESearch returned HTTP %d", resp.StatusCode)
	}

	var er esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing ESearch response: %w", err)
	}

	c.Log.Debug("esearch response", zap.Int("ids", len(er.ESearchResult.IDList)))
	return er.ESearchResult.IDList, nil
}

// ESearch JSON structures.
type esearchResponse struct {
	ESearchResult esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	RetMax string   `json:"retmax"`
	IDList []string `json:"idlist"`
}
