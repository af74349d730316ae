package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an untouched session survives before the janitor
// evicts it.
const DefaultIdleTTL = 30 * time.Minute

const janitorInterval = time.Minute

// Manager maps opaque session IDs to their stores. Each session gets its own
// Store instance, keeping results isolated under concurrent serving. Idle
// sessions are evicted after IdleTTL so abandoned results do not linger in
// memory.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Store
	idleTTL  time.Duration
	clock    func() time.Time
}

// NewManager returns a Manager with the given idle TTL. A non-positive TTL
// falls back to DefaultIdleTTL.
func NewManager(idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Manager{
		sessions: make(map[string]*Store),
		idleTTL:  idleTTL,
		clock:    time.Now,
	}
}

// Open creates a fresh session and returns its ID and store
func (m *Manager) Open() (string, *Store) {
	id := uuid.NewString()
	store := NewStore()
	store.touch()

	m.mu.Lock()
	m.sessions[id] = store
	m.mu.Unlock()

	return id, store
}

// Get returns the store for a session ID, refreshing its idle clock
func (m *Manager) Get(id string) (*Store, bool) {
	m.mu.RLock()
	store, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	store.touch()
	return store, true
}

// End removes a session and drops its result
func (m *Manager) End(id string) {
	m.mu.Lock()
	store, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		store.Clear()
	}
}

// Len reports the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictIdle removes sessions with no activity within the idle TTL and returns
// how many were dropped.
func (m *Manager) EvictIdle() int {
	cutoff := m.clock().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, store := range m.sessions {
		if store.LastActivity().Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Janitor periodically evicts idle sessions until the context is cancelled
func (m *Manager) Janitor(ctx context.Context) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle()
		}
	}
}
