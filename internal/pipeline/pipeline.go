// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one search, fetch, extract cycle and persists the
// results.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-fetcher/internal/extract"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Searcher resolves a free-text query to PubMed identifiers.
type Searcher interface {
	IDs(ctx context.Context, term string, cfg types.SearchConfig) ([]string, error)
}

// Fetcher resolves a batch of identifiers to the raw citation XML.
type Fetcher interface {
	Fetch(ctx context.Context, ids []string, cfg types.FetchConfig) (types.RawDocument, error)
}

// Archiver persists one completed run.
type Archiver interface {
	SaveRun(ctx context.Context, query string, records []types.Record) (int64, error)
}

// Pipeline wires the stages for one run. Archive may be nil.
type Pipeline struct {
	Search  Searcher
	Fetch   Fetcher
	Archive Archiver
	Log     *zap.Logger
}

// Result summarizes one run.
type Result struct {
	IDs     []string
	Records []types.Record

	// SnapshotWritten reports whether the JSON snapshot was produced.
	// When the search yields nothing, or the detail fetch fails, no
	// snapshot is written.
	SnapshotWritten bool
}

// Run executes the pipeline for query. Search and fetch failures degrade to
// console notices and an early, successful return; only an unparseable
// citation document (or a snapshot write failure) is returned as an error.
// Progress and diagnostics go to w.
func (p *Pipeline) Run(ctx context.Context, query string, cfg types.PipelineConfig, w io.Writer) (Result, error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	fmt.Fprintf(w, "Searching PubMed for: %s\n", query)

	ids, err := p.Search.IDs(ctx, query, cfg.Search)
	if err != nil {
		fmt.Fprintf(w, "Error fetching data from PubMed: %v\n", err)
		ids = nil
	}
	fmt.Fprintf(w, "Fetched paper IDs: %s\n", formatIDs(ids))

	if len(ids) == 0 {
		fmt.Fprintln(w, "No paper IDs found.")
		return Result{IDs: ids}, nil
	}

	doc, err := p.Fetch.Fetch(ctx, ids, cfg.Fetch)
	if err != nil {
		fmt.Fprintf(w, "Error fetching details from PubMed: %v\n", err)
		return Result{IDs: ids}, nil
	}

	fmt.Fprintln(w, "\nExtracting paper details...")
	debugTree(log, doc)

	records, err := extract.Extract(doc)
	if err != nil {
		return Result{IDs: ids}, err
	}
	log.Debug("extraction complete", zap.Int("records", len(records)))

	for i, r := range records {
		fmt.Fprintf(w, "\n[%d] %s\n", i+1, r.Title)
		fmt.Fprintf(w, "    authors:      %s\n", joinOrNone(r.Authors))
		fmt.Fprintf(w, "    affiliations: %s\n", joinOrNone(r.Affiliations))
	}

	if err := WriteSnapshot(cfg.Output.File, records); err != nil {
		return Result{IDs: ids, Records: records}, err
	}
	fmt.Fprintf(w, "\nSaved %d records to %s\n", len(records), cfg.Output.File)

	if p.Archive != nil {
		runID, err := p.Archive.SaveRun(ctx, query, records)
		if err != nil {
			fmt.Fprintf(w, "warning: archiving run failed: %v\n", err)
		} else {
			fmt.Fprintf(w, "Archived as run %d\n", runID)
		}
	}

	return Result{IDs: ids, Records: records, SnapshotWritten: true}, nil
}

// WriteSnapshot writes records as an indented UTF-8 JSON array to path,
// overwriting any previous snapshot.
func WriteSnapshot(path string, records []types.Record) error {
	if records == nil {
		records = []types.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// debugTree logs the parsed document outline when debug logging is on. The
// extra parse only happens in verbose mode.
func debugTree(log *zap.Logger, doc types.RawDocument) {
	if !log.Core().Enabled(zap.DebugLevel) {
		return
	}
	root, err := extract.ParseTree(doc)
	if err != nil {
		return
	}
	log.Debug("parsed citation tree", zap.String("outline", root.Outline()))
}

func formatIDs(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none found"
	}
	return strings.Join(values, "; ")
}
