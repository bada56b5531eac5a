// Package journal records dispatched events so a session can be inspected
// or replayed later.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
)

// Entry is one dispatched event.
type Entry struct {
	// ID uniquely identifies the entry across sessions.
	ID string

	// Session groups the entries written by one poll loop run.
	Session string

	// Sequence orders entries within a session, starting at 1.
	Sequence int64

	// Reason is the poll reason the event arrived with.
	Reason uint32

	Kind    event.Kind
	EventID event.ID
	IDs     event.IDBlock
	Payload []byte

	// Handled and Error record the dispatch outcome.
	Handled bool
	Error   string

	Timestamp time.Time
}

// Store persists journal entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores an entry. Appending a (session, sequence) pair twice
	// fails.
	Append(ctx context.Context, e Entry) error

	// Entries returns a session's entries ordered by sequence.
	// Returns an empty slice (not error) for an unknown session.
	Entries(ctx context.Context, session string) ([]Entry, error)

	// Sessions returns every session id, oldest first.
	Sessions(ctx context.Context) ([]string, error)

	// DeleteSession removes a session's entries.
	// Returns nil if the session doesn't exist.
	DeleteSession(ctx context.Context, session string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")

	// ErrDuplicateEntry indicates a (session, sequence) pair already exists.
	ErrDuplicateEntry = errors.New("journal entry already exists")
)
