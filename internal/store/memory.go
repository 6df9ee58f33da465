// internal/store/memory.go
//
// In-memory registry of live environment sessions.
//
// Characteristics:
//   - Stores *game.Session objects keyed by Session.ID.
//   - Map access is guarded by an RWMutex; each session additionally has
//     its own mutex so Update serializes steps on one session without
//     blocking others.
//   - Optional capacity limit; Save of a new session beyond it fails.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle-env/internal/game"
)

var (
	// ErrNotFound is returned for unknown session IDs.
	ErrNotFound = errors.New("store: session not found")
	// ErrFull is returned when saving a new session would exceed capacity.
	ErrFull = errors.New("store: session limit reached")
)

// Store defines the registry interface for sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Update runs fn with exclusive access to the session with the given ID.
	// The error returned by fn is passed through.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete removes a session. Deleting an unknown ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are held.
	Len() int
}

type entry struct {
	mu sync.Mutex
	s  *game.Session
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions
	sessions map[string]*entry // keyed by Session.ID
	max      int               // 0 means unlimited
}

// NewMemoryStore constructs an in-memory Store holding at most max
// sessions; max <= 0 means no limit.
func NewMemoryStore(max int) Store {
	return &memory{sessions: make(map[string]*entry), max: max}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[s.ID]; ok {
		e.mu.Lock()
		e.s = s
		e.mu.Unlock()
		return nil
	}
	if m.max > 0 && len(m.sessions) >= m.max {
		return ErrFull
	}
	m.sessions[s.ID] = &entry{s: s}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(e.s)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
