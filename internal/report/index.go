// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/audioprep/pkg/types"
)

const dbFile = "conversions.db"

// Index is the SQLite database of past conversion runs. It exists for
// querying run history; the JSON and CSV reports remain the canonical
// outputs, so index failures never abort a run.
type Index struct {
	db      *sql.DB
	maxRuns int
}

// RunInfo summarizes one recorded run.
type RunInfo struct {
	ID        int64
	StartedAt time.Time
	InputDir  string
	Converted int
	Skipped   int
	Failed    int
}

// OpenIndex opens or creates the run index database at dir/conversions.db,
// creating the schema if needed.
func OpenIndex(cfg types.IndexConfig) (*Index, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening run index: %w", err)
	}

	maxRuns := cfg.MaxRuns
	if maxRuns <= 0 {
		maxRuns = 20
	}

	idx := &Index{db: db, maxRuns: maxRuns}
	if err := idx.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating run index schema: %w", err)
	}
	return idx, nil
}

// Close releases the database connection.
func (i *Index) Close() error {
	return i.db.Close()
}

func (i *Index) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			input_dir TEXT NOT NULL,
			converted INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_records (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			source_path TEXT NOT NULL,
			target_path TEXT NOT NULL,
			status TEXT NOT NULL,
			error_detail TEXT,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_records_run_id ON run_records(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_run_records_source ON run_records(source_path)`,
	}

	for _, stmt := range statements {
		if _, err := i.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun appends one run and its records in a single transaction.
func (i *Index) RecordRun(ctx context.Context, inputDir string, startedAt time.Time, records []types.ConversionRecord) (int64, error) {
	var converted, skipped, failed int
	for _, rec := range records {
		switch rec.Status {
		case types.StatusConverted:
			converted++
		case types.StatusSkipped:
			skipped++
		case types.StatusFailed:
			failed++
		}
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, input_dir, converted, skipped, failed) VALUES (?, ?, ?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339), inputDir, converted, skipped, failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_records (run_id, source_path, target_path, status, error_detail, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			runID, rec.SourcePath, rec.TargetPath, string(rec.Status),
			rec.ErrorDetail, rec.Timestamp.Format(time.RFC3339),
		); err != nil {
			return 0, fmt.Errorf("inserting record for %s: %w", rec.SourcePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 uses the
// configured default.
func (i *Index) ListRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = i.maxRuns
	}

	rows, err := i.db.QueryContext(ctx,
		`SELECT id, started_at, input_dir, converted, skipped, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		var started string
		if err := rows.Scan(&info.ID, &started, &info.InputDir,
			&info.Converted, &info.Skipped, &info.Failed); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, started); err == nil {
			info.StartedAt = ts
		}
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// RunRecords returns the per-file records of one run in insertion order.
func (i *Index) RunRecords(ctx context.Context, runID int64) ([]types.ConversionRecord, error) {
	rows, err := i.db.QueryContext(ctx,
		`SELECT source_path, target_path, status, error_detail, timestamp
		 FROM run_records WHERE run_id = ? ORDER BY rowid`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying records for run %d: %w", runID, err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var rec types.ConversionRecord
		var status, ts string
		var detail sql.NullString
		if err := rows.Scan(&rec.SourcePath, &rec.TargetPath, &status, &detail, &ts); err != nil {
			return nil, fmt.Errorf("scanning record row: %w", err)
		}
		rec.Status = types.ConversionStatus(status)
		rec.ErrorDetail = detail.String
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = parsed
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}
