package journal

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-memory journal for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions []string
	data     map[string][]Entry // session -> entries in sequence order
	closed   bool
}

// NewMemoryStore creates a new in-memory journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]Entry),
	}
}

// Append implements Store.
func (m *MemoryStore) Append(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	entries, ok := m.data[e.Session]
	if !ok {
		m.sessions = append(m.sessions, e.Session)
	}

	i, found := slices.BinarySearchFunc(entries, e.Sequence, func(x Entry, seq int64) int {
		switch {
		case x.Sequence < seq:
			return -1
		case x.Sequence > seq:
			return 1
		}
		return 0
	})
	if found {
		return ErrDuplicateEntry
	}

	// Copy payload to avoid retaining caller's slice
	e.Payload = slices.Clone(e.Payload)
	m.data[e.Session] = slices.Insert(entries, i, e)
	return nil
}

// Entries implements Store.
func (m *MemoryStore) Entries(_ context.Context, session string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	entries := m.data[session]
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Payload = slices.Clone(e.Payload)
		out[i] = e
	}
	return out, nil
}

// Sessions implements Store.
func (m *MemoryStore) Sessions(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	return slices.Clone(m.sessions), nil
}

// DeleteSession implements Store.
func (m *MemoryStore) DeleteSession(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if _, ok := m.data[session]; !ok {
		return nil
	}
	delete(m.data, session)
	m.sessions = slices.DeleteFunc(m.sessions, func(s string) bool { return s == session })
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	m.sessions = nil
	return nil
}

// Len returns the total number of entries across all sessions.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, entries := range m.data {
		count += len(entries)
	}
	return count
}
