package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id        TEXT PRIMARY KEY,
	timestamp INTEGER NOT NULL,
	n         INTEGER NOT NULL,
	steps     INTEGER NOT NULL,
	boundary  TEXT NOT NULL,
	strategy  TEXT NOT NULL,
	total     REAL NOT NULL,
	std_dev   REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
`

// Index is a SQLite table of saved runs for filtering without reading
// every run directory.
type Index struct {
	db *sql.DB
}

type IndexEntry struct {
	ID        string
	Timestamp time.Time
	N         int
	Steps     int
	Boundary  string
	Strategy  string
	Total     float64
	StdDev    float64
}

// Filter narrows an index query. Zero fields match everything.
type Filter struct {
	Boundary string
	Strategy string
	MinN     int
	MaxN     int
	Limit    int
}

func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Index{db: db}, nil
}

func (ix *Index) Close() error { return ix.db.Close() }

// Add inserts or replaces the entry for a run.
func (ix *Index) Add(meta RunMetadata) error {
	_, err := ix.db.Exec(
		`INSERT OR REPLACE INTO runs (id, timestamp, n, steps, boundary, strategy, total, std_dev)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Timestamp.UnixNano(), meta.N, meta.StepsTaken,
		meta.Boundary, meta.Strategy, meta.Summary.Total, meta.Summary.StdDev,
	)
	return err
}

// Query returns matching runs, newest first.
func (ix *Index) Query(f Filter) ([]IndexEntry, error) {
	var (
		where []string
		args  []any
	)
	if f.Boundary != "" {
		where = append(where, "boundary = ?")
		args = append(args, f.Boundary)
	}
	if f.Strategy != "" {
		where = append(where, "strategy = ?")
		args = append(args, f.Strategy)
	}
	if f.MinN > 0 {
		where = append(where, "n >= ?")
		args = append(args, f.MinN)
	}
	if f.MaxN > 0 {
		where = append(where, "n <= ?")
		args = append(args, f.MaxN)
	}

	q := "SELECT id, timestamp, n, steps, boundary, strategy, total, std_dev FROM runs"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY timestamp DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := ix.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]IndexEntry, 0)
	for rows.Next() {
		var (
			e  IndexEntry
			ts int64
		)
		if err := rows.Scan(&e.ID, &ts, &e.N, &e.Steps, &e.Boundary, &e.Strategy, &e.Total, &e.StdDev); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(0, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
