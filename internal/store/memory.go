// internal/store/memory.go
//
// In-memory session store for the HTTP server.
// A session pairs a game with the solver that offers hints for it.
//
// Characteristics:
//   - Sessions keyed by game ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each session carries its own mutex; handlers hold it while touching the
//     game or the solver, which are not safe for concurrent use.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrNotFound is returned by Get for an unknown session.
var ErrNotFound = errors.New("store: session not found")

// Session is one game in play and its hint solver.
type Session struct {
	Game   *game.Game
	Solver *solver.Solver
	Daily  bool

	// Recorded counts the history entries already fed to Solver.
	Recorded int

	mu sync.Mutex
}

// ID returns the game ID the session is keyed by.
func (s *Session) ID() string { return s.Game.ID() }

// Sync feeds the guesses played since the last call to the solver.
// Call it with the session locked.
func (s *Session) Sync() error {
	hist := s.Game.History()
	for _, rec := range hist[s.Recorded:] {
		if err := s.Solver.Record(rec.Word, rec.Feedback); err != nil {
			return err
		}
		s.Recorded++
	}
	return nil
}

// Do runs fn with the session locked.
func (s *Session) Do(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// Store defines the persistence interface for sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by game ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete drops a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports the number of sessions.
	Len() int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
