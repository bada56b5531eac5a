package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
)

// SQLiteStore persists journal entries to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite journal.
// The path should be a file path (e.g., "./journal.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: every ":memory:" connection is its own database, and
	// the journal has a single writer anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS journal (
			id TEXT NOT NULL UNIQUE,
			session TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			reason INTEGER NOT NULL,
			kind INTEGER NOT NULL,
			event_id INTEGER NOT NULL,
			self_id INTEGER NOT NULL,
			parent_id INTEGER NOT NULL,
			ancestor_id INTEGER NOT NULL,
			component_id INTEGER NOT NULL,
			payload BLOB,
			handled INTEGER NOT NULL,
			error TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			PRIMARY KEY (session, sequence)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_journal_event
		ON journal(kind, event_id)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO journal (
			id, session, sequence, reason, kind, event_id,
			self_id, parent_id, ancestor_id, component_id,
			payload, handled, error, timestamp
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session, sequence) DO NOTHING
	`,
		e.ID, e.Session, e.Sequence, int64(e.Reason), int(e.Kind), int64(e.EventID),
		int64(e.IDs.Self), int64(e.IDs.Parent), int64(e.IDs.Ancestor), int64(e.IDs.Component),
		e.Payload, e.Handled, e.Error, ts.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	if n == 0 {
		return ErrDuplicateEntry
	}
	return nil
}

// Entries implements Store.
func (s *SQLiteStore) Entries(ctx context.Context, session string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sequence, reason, kind, event_id,
			self_id, parent_id, ancestor_id, component_id,
			payload, handled, error, timestamp
		FROM journal
		WHERE session = ?
		ORDER BY sequence
	`, session)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e                       Entry
			reason, eventID         int64
			kind                    int
			self, parent, anc, comp int64
			timestamp               string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &reason, &kind, &eventID,
			&self, &parent, &anc, &comp,
			&e.Payload, &e.Handled, &e.Error, &timestamp); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Session = session
		e.Reason = uint32(reason)
		e.Kind = event.Kind(kind)
		e.EventID = event.ID(eventID)
		e.IDs = event.IDBlock{
			Self:      event.ObjectID(self),
			Parent:    event.ObjectID(parent),
			Ancestor:  event.ObjectID(anc),
			Component: event.ComponentID(comp),
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// Sessions implements Store.
func (s *SQLiteStore) Sessions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session FROM journal
		GROUP BY session
		ORDER BY MIN(rowid)
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var session string
		if err := rows.Scan(&session); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// DeleteSession implements Store.
func (s *SQLiteStore) DeleteSession(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM journal WHERE session = ?
	`, session)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
