// internal/cache/store.go
//
// Cache storage for expensive, derived data (vocabulary, indices, coverage scores,
// evaluation artifacts).
//
// Responsibilities:
//   - Store: the interface Vocabulary, Solver and the evaluation harness are handed,
//     instead of reaching for files on their own.
//   - memory: an RWMutex-guarded in-process implementation (tests, shared evaluation state).
//
// Entries are named ("vocab", "index", "coverage", "evaluation") and hold JSON payloads.
// A payload that is present but cannot be decoded is reported as ErrDecode; callers
// are expected to surface it, not to rebuild silently.

package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Well-known entry names.
const (
	EntryVocab      = "vocab"
	EntryIndex      = "index"
	EntryCoverage   = "coverage"
	EntryEvaluation = "evaluation"
)

// ErrDecode is returned when a cache entry exists but its payload is malformed.
var ErrDecode = errors.New("cache: malformed entry")

// Store defines the persistence interface for cached data.
// Implementations may be backed by memory (this file), JSON files or SQLite.
type Store interface {
	// Load decodes the named entry into v.
	// It reports false (and no error) when the entry does not exist.
	Load(name string, v any) (bool, error)

	// Save encodes v and persists it under name, replacing any previous entry.
	Save(name string, v any) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards entries
	entries map[string][]byte // JSON payloads keyed by entry name
}

// NewMemory constructs a new in-memory Store.
func NewMemory() Store {
	return &memory{entries: make(map[string][]byte)}
}

// Load looks up an entry by name and decodes it into v.
func (m *memory) Load(name string, v any) (bool, error) {
	m.mu.RLock()
	payload, ok := m.entries[name]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := decode(name, payload, v); err != nil {
		return true, err
	}
	return true, nil
}

// Save adds or replaces the entry.
func (m *memory) Save(name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = payload
	return nil
}

// decode unmarshals a payload, tagging any failure with ErrDecode.
func decode(name string, payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}
	return nil
}
