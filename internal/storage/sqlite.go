// Package storage provides SQLite-based persistence for runtime traces.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tilequest/internal/trace"
)

// Store manages the SQLite database connection for trace persistence.
type Store struct {
	db *sql.DB
}

// EventRecord is one stored trace event.
type EventRecord struct {
	ID        int64
	RunID     string
	Frame     uint64
	Kind      string
	Source    string
	Detail    string
	CreatedAt time.Time
}

// RunSummary aggregates the events of one recorded run.
type RunSummary struct {
	RunID     string
	SceneID   string
	Events    int
	LastFrame uint64
	StartedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS trace_runs (
			run_id TEXT PRIMARY KEY,
			scene_id TEXT NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS trace_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES trace_runs(run_id),
			frame INTEGER NOT NULL,
			kind TEXT NOT NULL,
			source TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_trace_events_run ON trace_events(run_id, id);
		CREATE INDEX IF NOT EXISTS idx_trace_events_kind ON trace_events(kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginRun registers a new run of sceneID and returns a recorder for it.
func (s *Store) BeginRun(sceneID string) (*Recorder, error) {
	runID := uuid.NewString()
	if _, err := s.db.Exec(
		"INSERT INTO trace_runs (run_id, scene_id) VALUES (?, ?)",
		runID, sceneID,
	); err != nil {
		return nil, fmt.Errorf("storage: cannot begin run: %w", err)
	}
	return &Recorder{store: s, runID: runID}, nil
}

// SaveEvent stores one trace event for runID, stamped with the event's own
// time (or now, if the event has none).
// Returns the ID of the inserted record.
func (s *Store) SaveEvent(runID string, ev trace.Event) (int64, error) {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	result, err := s.db.Exec(
		"INSERT INTO trace_events (run_id, frame, kind, source, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		runID, int64(ev.Frame), ev.Kind, ev.Source, ev.Detail, at.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RunEvents retrieves the first limit events of a run in recording order.
// A non-positive limit returns every event.
func (s *Store) RunEvents(runID string, limit int) ([]EventRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, frame, kind, source, detail, created_at
		 FROM trace_events
		 WHERE run_id = ?
		 ORDER BY id
		 LIMIT ?`,
		runID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var e EventRecord
		var frame int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &frame, &e.Kind, &e.Source, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Frame = uint64(frame)
		e.CreatedAt = parseTime(createdAt)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return events, nil
}

// CountEvents returns how many events a run recorded.
func (s *Store) CountEvents(runID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM trace_events WHERE run_id = ?",
		runID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count events: %w", err)
	}
	return n, nil
}

// Runs retrieves the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.run_id, r.scene_id, COUNT(e.id), COALESCE(MAX(e.frame), 0), r.started_at
		 FROM trace_runs r
		 LEFT JOIN trace_events e ON e.run_id = r.run_id
		 GROUP BY r.run_id
		 ORDER BY r.started_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var lastFrame int64
		var startedAt any
		if err := rows.Scan(&r.RunID, &r.SceneID, &r.Events, &lastFrame, &startedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.LastFrame = uint64(lastFrame)
		r.StartedAt = parseTime(startedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// LatestRun returns the ID of the most recent run, or "" if none exist.
func (s *Store) LatestRun() (string, error) {
	var runID string
	err := s.db.QueryRow(
		"SELECT run_id FROM trace_runs ORDER BY started_at DESC, rowid DESC LIMIT 1",
	).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query latest run: %w", err)
	}
	return runID, nil
}

// ClearRuns deletes every recorded run and event.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM trace_events; DELETE FROM trace_runs;"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// timeLayout matches SQLite's CURRENT_TIMESTAMP, with optional fractional seconds.
const timeLayout = "2006-01-02 15:04:05.999999999"

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Recorder is a trace.Sink that stores events under one run ID.
type Recorder struct {
	store *Store
	runID string
}

// RunID returns the run's identifier.
func (r *Recorder) RunID() string { return r.runID }

// Record implements trace.Sink.
func (r *Recorder) Record(ev trace.Event) error {
	_, err := r.store.SaveEvent(r.runID, ev)
	return err
}

var _ trace.Sink = (*Recorder)(nil)
