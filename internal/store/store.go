// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store archives completed runs in a SQLite database so earlier
// snapshots remain queryable after the output file is overwritten.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const dbFile = "pubmed.db"

// Store manages the archive SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Open opens or creates the archive database at cfg.Dir/pubmed.db,
// creating the schema if it does not exist.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			created_at TEXT NOT NULL,
			record_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			title TEXT,
			authors TEXT,
			affiliations TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_run_id ON records(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun stores one run and its records, returning the run id.
func (s *Store) SaveRun(ctx context.Context, query string, records []types.Record) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, created_at, record_count) VALUES (?, ?, ?)`,
		query, time.Now().UTC().Format(time.RFC3339), len(records),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (run_id, position, title, authors, affiliations)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		authorsJSON, _ := json.Marshal(r.Authors)
		affiliationsJSON, _ := json.Marshal(r.Affiliations)
		if _, err := stmt.ExecContext(ctx, runID, i, r.Title, string(authorsJSON), string(affiliationsJSON)); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Run summarizes one archived run.
type Run struct {
	ID          int64     `json:"id" yaml:"id"`
	Query       string    `json:"query" yaml:"query"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	RecordCount int       `json:"record_count" yaml:"record_count"`
}

// Runs lists archived runs, newest first. A non-positive limit uses the
// store default.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, created_at, record_count FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Query, &created, &r.RecordCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Records returns the records of one run in snapshot order.
func (s *Store) Records(ctx context.Context, runID int64) ([]types.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, authors, affiliations FROM records WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var r types.Record
		var authorsJSON, affiliationsJSON string
		if err := rows.Scan(&r.Title, &authorsJSON, &affiliationsJSON); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &r.Authors); err != nil {
			r.Authors = []string{}
		}
		if err := json.Unmarshal([]byte(affiliationsJSON), &r.Affiliations); err != nil {
			r.Affiliations = []string{}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
