// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// ExportEntry holds one archived run with its records for export.
type ExportEntry struct {
	RunID     int64          `json:"run_id" yaml:"run_id"`
	Query     string         `json:"query" yaml:"query"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	Records   []types.Record `json:"records" yaml:"records"`
}

const exportLimit = 100000

// ExportYAML writes the whole archive to dir/export.yaml, newest run first.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the whole archive to dir/export.json, newest run first.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	runs, err := s.Runs(ctx, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("querying runs for export: %w", err)
	}

	entries := make([]ExportEntry, len(runs))
	for i, r := range runs {
		records, err := s.Records(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("querying records for run %d: %w", r.ID, err)
		}
		entries[i] = ExportEntry{
			RunID:     r.ID,
			Query:     r.Query,
			CreatedAt: r.CreatedAt,
			Records:   records,
		}
	}
	return entries, nil
}
