package store

import "sync"

// Store is an in-memory byte-string key-value map. All operations are
// atomic with respect to each other. The zero value is not usable; call
// New.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Get returns the value stored under key. The returned slice is a stable
// snapshot: later writes replace values instead of mutating them. Callers
// must not modify it.
func (s *Store) Get(key []byte) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[string(key)]
	return v, ok
}

// Set stores value under key, replacing any previous value. It reports
// whether the key already existed. Both arguments are copied.
func (s *Store) Set(key, value []byte) bool {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.data[string(key)]
	s.data[string(key)] = v
	return existed
}

// Delete removes the given keys and returns how many of them were
// actually present. Absent keys are skipped.
func (s *Store) Delete(keys ...[]byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, key := range keys {
		if _, ok := s.data[string(key)]; ok {
			delete(s.data, string(key))
			removed++
		}
	}
	return removed
}

// Append extends the value under key with suffix and returns the
// resulting total length in bytes. A missing key is treated as an empty
// value. The previous value slice is left untouched, so snapshots handed
// out by Get stay valid.
func (s *Store) Append(key, suffix []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.data[string(key)]
	v := make([]byte, 0, len(old)+len(suffix))
	v = append(v, old...)
	v = append(v, suffix...)
	s.data[string(key)] = v
	return len(v)
}

// Keys returns a copy of every key in unspecified order. The pattern
// argument is part of the store contract but is not applied: every key is
// returned regardless. Key filtering is a documented limitation.
func (s *Store) Keys(pattern []byte) [][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([][]byte, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, []byte(k))
	}
	return keys
}

// Exists reports whether key is present.
func (s *Store) Exists(key []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[string(key)]
	return ok
}

// Clear removes every entry. The store itself stays valid; clients
// connected during a flush keep operating on the same (now empty) map.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.data)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}
