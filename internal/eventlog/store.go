// Package eventlog persists battle events to SQLite for post-run analysis.
package eventlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/PaulDouglasAGI/war/internal/sim"
)

// flushBatch is the buffered event count that triggers an automatic flush.
const flushBatch = 256

// Store wraps a SQLite connection recording one battle run. It implements
// sim.EventSink: Record only appends to an in-memory buffer, so the tick loop
// never waits on the database.
type Store struct {
	conn  *sqlx.DB
	runID string
	buf   []sim.Event
}

// Open opens or creates a SQLite database at the given path and registers a
// new run with the given seed.
func Open(path string, seed int64) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn, runID: uuid.NewString()}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	_, err = conn.Exec(`INSERT INTO runs (id, seed, started_at) VALUES (?, ?, ?)`,
		s.runID, seed, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("register run: %w", err)
	}
	return s, nil
}

// RunID returns the identifier assigned to this run.
func (s *Store) RunID() string {
	return s.runID
}

// Record buffers one event, flushing when the batch fills. Flush errors here
// are swallowed; the simulation outcome must not depend on the log.
func (s *Store) Record(e sim.Event) {
	s.buf = append(s.buf, e)
	if len(s.buf) >= flushBatch {
		_ = s.Flush()
	}
}

// Flush writes all buffered events in one transaction.
func (s *Store) Flush() error {
	if len(s.buf) == 0 {
		return nil
	}
	tx, err := s.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO events
		(run_id, tick, kind, unit_id, faction, role, x, y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range s.buf {
		if _, err := stmt.Exec(s.runID, e.Tick, string(e.Kind), e.UnitID,
			e.Faction.String(), e.Role.String(), e.Pos.X, e.Pos.Y); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.buf = s.buf[:0]
	return nil
}

// FinishRun records the outcome, flushes, and leaves the store open for
// queries.
func (s *Store) FinishRun(winner sim.Faction, ticks int) error {
	if err := s.Flush(); err != nil {
		return err
	}
	_, err := s.conn.Exec(`UPDATE runs SET winner = ?, ticks = ? WHERE id = ?`,
		winner.String(), ticks, s.runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// EventCount returns the number of persisted events for this run.
func (s *Store) EventCount() (int, error) {
	var n int
	err := s.conn.Get(&n, `SELECT COUNT(*) FROM events WHERE run_id = ?`, s.runID)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// CountByKind returns the persisted event totals per kind for this run.
func (s *Store) CountByKind() (map[string]int, error) {
	rows, err := s.conn.Queryx(
		`SELECT kind, COUNT(*) AS n FROM events WHERE run_id = ? GROUP BY kind`, s.runID)
	if err != nil {
		return nil, fmt.Errorf("count by kind: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out[kind] = n
	}
	return out, rows.Err()
}

// Close flushes and closes the database connection.
func (s *Store) Close() error {
	flushErr := s.Flush()
	if err := s.conn.Close(); err != nil {
		return err
	}
	return flushErr
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		winner TEXT,
		ticks INTEGER
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		kind TEXT NOT NULL,
		unit_id INTEGER NOT NULL,
		faction TEXT NOT NULL,
		role TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run_tick ON events(run_id, tick);
	`
	_, err := s.conn.Exec(schema)
	return err
}
