// internal/store/memory.go
//
// In-memory implementation of the session Store.
// This is a lightweight persistence layer for live rounds served over HTTP;
// durability is out of scope, state is lost when the process restarts.
//
// Characteristics:
//   - Sessions keyed by uuid, one record per round.
//   - Concurrency-safe: RWMutex over the map, plus one mutex per record so
//     concurrent requests against the same session serialize.
//   - Idle records are reaped by Sweep; the server runs it on a ticker.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palabreo/palabreo/internal/game"
)

// ErrNotFound reports an unknown or already-forgotten session id.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for live sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Create registers a session and returns its new id.
	Create(ctx context.Context, sess *game.Session) (string, error)

	// With runs fn against the stored session, serialized per id.
	// Returns ErrNotFound for unknown ids, otherwise fn's error.
	With(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete forgets a session. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}

// record pairs a session with its access metadata.
type record struct {
	mu         sync.Mutex // serializes access to sess and lastAccess
	sess       *game.Session
	lastAccess time.Time
}

// Memory is the in-memory map-based Store.
type Memory struct {
	mu       sync.RWMutex       // guards sessions map
	sessions map[string]*record // keyed by uuid
}

// NewMemory constructs an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*record)}
}

// Create registers sess under a fresh uuid.
func (m *Memory) Create(ctx context.Context, sess *game.Session) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = &record{sess: sess, lastAccess: time.Now()}
	m.mu.Unlock()
	return id, nil
}

// With looks up id and runs fn while holding the record lock. Every call
// refreshes the record's last access time.
func (m *Memory) With(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.RLock()
	rec, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.lastAccess = time.Now()
	return fn(rec.sess)
}

// Delete forgets a session.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle longer than maxIdle and reports how many
// were dropped.
func (m *Memory) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, rec := range m.sessions {
		rec.mu.Lock()
		idle := rec.lastAccess.Before(cutoff)
		rec.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
