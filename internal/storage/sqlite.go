package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matsen/citematch/internal/citation"
	"github.com/matsen/citematch/internal/matcher"
	"github.com/matsen/citematch/internal/reference"
)

// ErrRunNotFound is returned by GetRun for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// DB wraps a SQLite database connection.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// RunMeta describes how a report was produced.
type RunMeta struct {
	Source    string  `json:"source"` // Input file or document ID
	Style     string  `json:"style"`
	Threshold float64 `json:"threshold"`
}

// Run is a stored report summary.
type Run struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Meta      RunMeta       `json:"meta"`
	Stats     matcher.Stats `json:"stats"`
}

// RunDetail is a stored run with its per-citation results.
type RunDetail struct {
	Run
	Report matcher.Report `json:"report"`
}

// selectRunFields contains the standard field list for run queries.
const selectRunFields = `id, created_at, source, style, threshold,
	total_citations, total_references, matched, unmatched,
	corrected, formatted, unused, match_rate`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			source TEXT NOT NULL,
			style TEXT NOT NULL,
			threshold REAL NOT NULL,
			total_citations INTEGER NOT NULL,
			total_references INTEGER NOT NULL,
			matched INTEGER NOT NULL,
			unmatched INTEGER NOT NULL,
			corrected INTEGER NOT NULL,
			formatted INTEGER NOT NULL,
			unused INTEGER NOT NULL,
			match_rate REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

		-- One row per citation marker
		CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			citation_index INTEGER NOT NULL,
			citation TEXT NOT NULL,
			kind TEXT NOT NULL,
			matched INTEGER NOT NULL,
			reference_index INTEGER NOT NULL,
			reference TEXT NOT NULL,
			score REAL NOT NULL,
			author_score REAL NOT NULL,
			year_score REAL NOT NULL,
			corrected_text TEXT NOT NULL,
			formatted_text TEXT NOT NULL,
			PRIMARY KEY (run_id, citation_index)
		);

		-- References never selected by any citation, keyed by input position
		CREATE TABLE IF NOT EXISTS unused_refs (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			ref_index INTEGER NOT NULL,
			raw TEXT NOT NULL,
			PRIMARY KEY (run_id, ref_index)
		);
	`

	_, err := db.Exec(schema)
	return err
}

// SaveReport stores a report under a new run ID.
func (d *DB) SaveReport(meta RunMeta, report matcher.Report) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: d.now().UTC().Truncate(time.Second),
		Meta:      meta,
		Stats:     report.Stats,
	}

	tx, err := d.db.Begin()
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	s := report.Stats
	if _, err := tx.Exec(`
		INSERT INTO runs (`+selectRunFields+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.CreatedAt.Unix(), meta.Source, meta.Style, meta.Threshold,
		s.TotalCitations, s.TotalReferences, s.Matched, s.Unmatched,
		s.Corrected, s.Formatted, s.Unused, s.MatchRate); err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	resultStmt, err := tx.Prepare(`
		INSERT INTO results (
			run_id, citation_index, citation, kind, matched,
			reference_index, reference, score, author_score, year_score,
			corrected_text, formatted_text
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing result insert: %w", err)
	}
	defer resultStmt.Close()

	for _, r := range report.Results {
		if _, err := resultStmt.Exec(
			run.ID, r.CitationIndex, r.Citation, string(r.Kind), r.Matched,
			r.ReferenceIndex, r.Reference, r.Score, r.Components.Author, r.Components.Year,
			r.CorrectedText, r.FormattedText,
		); err != nil {
			return Run{}, fmt.Errorf("inserting result %d: %w", r.CitationIndex, err)
		}
	}

	unusedStmt, err := tx.Prepare(`INSERT INTO unused_refs (run_id, ref_index, raw) VALUES (?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing unused insert: %w", err)
	}
	defer unusedStmt.Close()

	for _, e := range report.UnusedReferences {
		if _, err := unusedStmt.Exec(run.ID, e.Index, e.Raw); err != nil {
			return Run{}, fmt.Errorf("inserting unused reference %d: %w", e.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var created int64
	err := row.Scan(
		&run.ID, &created, &run.Meta.Source, &run.Meta.Style, &run.Meta.Threshold,
		&run.Stats.TotalCitations, &run.Stats.TotalReferences,
		&run.Stats.Matched, &run.Stats.Unmatched,
		&run.Stats.Corrected, &run.Stats.Formatted, &run.Stats.Unused,
		&run.Stats.MatchRate,
	)
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.Unix(created, 0).UTC()
	return run, nil
}

// ListRuns returns stored runs, newest first. A limit of zero or less
// returns every run.
func (d *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + selectRunFields + ` FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads a stored run with its results. Parsed fields that are not
// stored (mentions, unused entry metadata) are derived again from the raw
// text.
func (d *DB) GetRun(id string) (*RunDetail, error) {
	run, err := scanRun(d.db.QueryRow(`SELECT `+selectRunFields+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}

	results, err := d.results(id)
	if err != nil {
		return nil, err
	}
	unused, err := d.unusedRefs(id)
	if err != nil {
		return nil, err
	}

	return &RunDetail{
		Run: run,
		Report: matcher.Report{
			Results:          results,
			Stats:            run.Stats,
			UnusedReferences: unused,
		},
	}, nil
}

func (d *DB) results(runID string) ([]matcher.Result, error) {
	rows, err := d.db.Query(`
		SELECT citation_index, citation, kind, matched,
			reference_index, reference, score, author_score, year_score,
			corrected_text, formatted_text
		FROM results WHERE run_id = ? ORDER BY citation_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	results := []matcher.Result{}
	for rows.Next() {
		var r matcher.Result
		var kind string
		if err := rows.Scan(
			&r.CitationIndex, &r.Citation, &kind, &r.Matched,
			&r.ReferenceIndex, &r.Reference, &r.Score, &r.Components.Author, &r.Components.Year,
			&r.CorrectedText, &r.FormattedText,
		); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Kind = matcher.Kind(kind)
		if r.Kind == matcher.KindAuthorYear {
			if m, ok := citation.Parse(r.Citation); ok {
				r.Mention = &m
			}
		}
		r.NeedsCorrection = r.CorrectedText != r.Citation
		r.NeedsFormatting = r.FormattedText != r.CorrectedText
		results = append(results, r)
	}
	return results, rows.Err()
}

func (d *DB) unusedRefs(runID string) ([]reference.Entry, error) {
	rows, err := d.db.Query(`SELECT ref_index, raw FROM unused_refs WHERE run_id = ? ORDER BY ref_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying unused references: %w", err)
	}
	defer rows.Close()

	entries := []reference.Entry{}
	for rows.Next() {
		var idx int
		var raw string
		if err := rows.Scan(&idx, &raw); err != nil {
			return nil, fmt.Errorf("scanning unused reference: %w", err)
		}
		entries = append(entries, reference.Parse(idx, raw))
	}
	return entries, rows.Err()
}
