// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. The upstream behavior has no
	// timeout at all; the default of 30 s is a safety margin so a stalled
	// NCBI call cannot hang the run indefinitely.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-fetcher/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the ESearch stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of identifiers to request (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// FetchConfig holds settings for the EFetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// OutputConfig holds settings for the JSON snapshot.
type OutputConfig struct {
	// File is the snapshot path, overwritten on every run (default
	// "pubmed_results.json").
	File string `json:"file" yaml:"file"`
}

// ArchiveConfig holds settings for the optional run archive.
type ArchiveConfig struct {
	// Enabled controls whether runs are stored in the archive database.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the archive database (default "archive").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of runs listed by the
	// history command (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}
