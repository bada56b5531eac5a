package registry

import "sort"

type slot[V any] struct {
	value V
	seq   uint64
}

// Table maps keys to values and iterates in insertion order.
// Re-putting an existing key keeps its original position.
type Table[K comparable, V any] struct {
	entries map[K]slot[V]
	next    uint64
}

// New creates a new empty table.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{
		entries: make(map[K]slot[V]),
	}
}

// Put adds or replaces the value for key.
func (t *Table[K, V]) Put(key K, value V) {
	if s, ok := t.entries[key]; ok {
		s.value = value
		t.entries[key] = s
		return
	}
	t.entries[key] = slot[V]{value: value, seq: t.next}
	t.next++
}

// Insert adds value under key only if the key is absent.
// It reports whether the value was stored.
func (t *Table[K, V]) Insert(key K, value V) bool {
	if _, ok := t.entries[key]; ok {
		return false
	}
	t.Put(key, value)
	return true
}

// Get returns the value for a key and whether it exists.
func (t *Table[K, V]) Get(key K) (V, bool) {
	s, ok := t.entries[key]
	return s.value, ok
}

// MustGet returns the value for a key, panicking if not found.
func (t *Table[K, V]) MustGet(key K) V {
	s, ok := t.entries[key]
	if !ok {
		panic("registry: key not found")
	}
	return s.value
}

// Has returns true if the key exists in the table.
func (t *Table[K, V]) Has(key K) bool {
	_, ok := t.entries[key]
	return ok
}

// Take removes the entry for key and returns its value.
// It reports false if there was no such entry.
func (t *Table[K, V]) Take(key K) (V, bool) {
	s, ok := t.entries[key]
	if ok {
		delete(t.entries, key)
	}
	return s.value, ok
}

// Delete removes a key from the table.
func (t *Table[K, V]) Delete(key K) {
	delete(t.entries, key)
}

// Keys returns all keys in insertion order.
func (t *Table[K, V]) Keys() []K {
	keys := make([]K, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return t.entries[keys[i]].seq < t.entries[keys[j]].seq
	})
	return keys
}

// Len returns the number of entries in the table.
func (t *Table[K, V]) Len() int {
	return len(t.entries)
}

// Range calls fn for each entry in insertion order until fn returns false.
//
// Range walks a snapshot of the keys taken before the first call, so fn may
// Put or Take freely. Entries removed by fn before they are reached are
// skipped; entries added by fn are not visited.
func (t *Table[K, V]) Range(fn func(K, V) bool) {
	for _, k := range t.Keys() {
		s, ok := t.entries[k]
		if !ok {
			continue
		}
		if !fn(k, s.value) {
			return
		}
	}
}

// GetOrCreate returns the value for a key, creating it with the factory
// function if it doesn't exist.
func (t *Table[K, V]) GetOrCreate(key K, factory func() V) V {
	if s, ok := t.entries[key]; ok {
		return s.value
	}
	v := factory()
	t.Put(key, v)
	return v
}
