// Package manifest keeps the history of filtering runs in a local SQLite
// database: one row per run plus a per-check breakdown of what was
// dropped. The manifest is what lets operators compare runs across
// parameter changes without keeping every report file around.
package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chriscorrea/winnow/internal/runner"
)

// ErrNotFound is returned when a run id has no manifest entry.
var ErrNotFound = errors.New("run not found")

// Store is a run manifest backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the manifest database at path, with WAL
// mode enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}

	// WAL mode for better concurrency between recording and inspection
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring manifest: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring manifest: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing manifest schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist.
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	lang TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	shards INTEGER NOT NULL,
	docs_read INTEGER NOT NULL,
	docs_kept INTEGER NOT NULL,
	docs_dropped INTEGER NOT NULL,
	malformed INTEGER NOT NULL,
	kept_units INTEGER NOT NULL DEFAULT 0,
	units TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS run_checks (
	run_id TEXT NOT NULL,
	check_name TEXT NOT NULL,
	dropped INTEGER NOT NULL,
	PRIMARY KEY(run_id, check_name),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Record stores a finished run report.
func (s *Store) Record(ctx context.Context, r *runner.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, lang, started_at, finished_at, shards, docs_read, docs_kept, docs_dropped, malformed, kept_units, units)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Lang,
		r.Started.UTC().Format(time.RFC3339Nano),
		r.Finished.UTC().Format(time.RFC3339Nano),
		len(r.Shards), r.Read, r.Kept, r.Dropped, r.Malformed,
		r.KeptUnits, r.Units)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.ID, err)
	}

	if len(r.DroppedBy) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_checks (run_id, check_name, dropped) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for name, dropped := range r.DroppedBy {
			if _, err := stmt.ExecContext(ctx, r.ID, name, dropped); err != nil {
				return fmt.Errorf("recording check tally %s: %w", name, err)
			}
		}
	}

	return tx.Commit()
}

// RunSummary is one manifest row, with the per-check drop breakdown.
type RunSummary struct {
	ID        string
	Lang      string
	Started   time.Time
	Finished  time.Time
	Shards    int
	Read      int
	Kept      int
	Dropped   int
	Malformed int
	KeptUnits int
	Units     string
	DroppedBy map[string]int
}

// Runs lists recorded runs, newest first. A non-positive limit defaults
// to 20.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, lang, started_at, finished_at, shards, docs_read, docs_kept, docs_dropped, malformed, kept_units, units
FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		summary, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, summary)
	}
	return runs, rows.Err()
}

// Run fetches one run by id, including its per-check breakdown.
func (s *Store) Run(ctx context.Context, id string) (*RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, lang, started_at, finished_at, shards, docs_read, docs_kept, docs_dropped, malformed, kept_units, units
FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("fetching run %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	summary, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	checkRows, err := s.db.QueryContext(ctx,
		`SELECT check_name, dropped FROM run_checks WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("fetching check tallies for %s: %w", id, err)
	}
	defer checkRows.Close()

	summary.DroppedBy = make(map[string]int)
	for checkRows.Next() {
		var name string
		var dropped int
		if err := checkRows.Scan(&name, &dropped); err != nil {
			return nil, err
		}
		summary.DroppedBy[name] = dropped
	}
	return &summary, checkRows.Err()
}

func scanRun(rows *sql.Rows) (RunSummary, error) {
	var s RunSummary
	var started, finished string
	if err := rows.Scan(&s.ID, &s.Lang, &started, &finished,
		&s.Shards, &s.Read, &s.Kept, &s.Dropped, &s.Malformed,
		&s.KeptUnits, &s.Units); err != nil {
		return RunSummary{}, err
	}
	var err error
	if s.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return RunSummary{}, fmt.Errorf("bad started_at %q: %w", started, err)
	}
	if s.Finished, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return RunSummary{}, fmt.Errorf("bad finished_at %q: %w", finished, err)
	}
	return s, nil
}
