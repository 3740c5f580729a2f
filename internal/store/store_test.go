// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) *Store {
	t.Helper()
	cfg := types.ArchiveConfig{
		Enabled:    true,
		Dir:        t.TempDir(),
		MaxResults: 20,
	}
	s, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.Record {
	return []types.Record{
		{Title: "Study A", Authors: []string{"Jane Doe"}, Affiliations: []string{"Lab X", "Lab X"}},
		{Title: "No Title Found", Authors: []string{}, Affiliations: []string{}},
	}
}

// --- save and query ---

func TestSaveRunRoundTrip(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()

	runID, err := s.SaveRun(ctx, "cancer genomics", sampleRecords())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if runID == 0 {
		t.Error("runID should be nonzero")
	}

	records, err := s.Records(ctx, runID)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if !reflect.DeepEqual(records, sampleRecords()) {
		t.Errorf("Records = %+v, want %+v", records, sampleRecords())
	}
}

func TestSaveRunEmpty(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()

	runID, err := s.SaveRun(ctx, "nothing found", nil)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := s.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	if runs[0].RecordCount != 0 {
		t.Errorf("RecordCount = %d, want 0", runs[0].RecordCount)
	}

	records, err := s.Records(ctx, runID)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestRunsNewestFirst(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()

	for _, q := range []string{"first", "second", "third"} {
		if _, err := s.SaveRun(ctx, q, nil); err != nil {
			t.Fatalf("SaveRun(%q): %v", q, err)
		}
	}

	runs, err := s.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	if runs[0].Query != "third" || runs[2].Query != "first" {
		t.Errorf("runs out of order: %+v", runs)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}
}

func TestRunsLimit(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.SaveRun(ctx, "q", nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.Runs(ctx, 2)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("len(runs) = %d, want 2", len(runs))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ArchiveConfig{Dir: dir}

	s1, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s1.SaveRun(context.Background(), "persisted", sampleRecords()); err != nil {
		t.Fatal(err)
	}
	s1.Close()

	// Reopening must keep existing data and not recreate the schema.
	s2, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	runs, err := s2.Runs(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Query != "persisted" {
		t.Errorf("runs after reopen = %+v", runs)
	}
}

// --- export ---

func TestExportJSON(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()

	if _, err := s.SaveRun(ctx, "cancer genomics", sampleRecords()); err != nil {
		t.Fatal(err)
	}

	path, err := s.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if filepath.Base(path) != "export.json" {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ExportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("invalid JSON export: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Query != "cancer genomics" {
		t.Errorf("Query = %q", entries[0].Query)
	}
	if !reflect.DeepEqual(entries[0].Records, sampleRecords()) {
		t.Errorf("Records = %+v", entries[0].Records)
	}
}

func TestExportYAML(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()

	if _, err := s.SaveRun(ctx, "cancer genomics", sampleRecords()); err != nil {
		t.Fatal(err)
	}

	path, err := s.ExportYAML(ctx)
	if err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ExportEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		t.Fatalf("invalid YAML export: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Records[0].Title != "Study A" {
		t.Errorf("Title = %q", entries[0].Records[0].Title)
	}
}
