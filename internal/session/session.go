// Package session holds per-session analysis state in memory. Results are
// never persisted to durable storage; a session owns exactly one slot holding
// the most recent FeedbackResult, overwritten on each new analysis.
package session

import (
	"sync"
	"time"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

// Store is the single-result slot for one user session. It is safe for
// concurrent use so sessions can be served by concurrent handlers.
type Store struct {
	mu        sync.RWMutex
	current   *types.FeedbackResult
	updatedAt time.Time
	clock     func() time.Time
}

// NewStore returns an empty session store
func NewStore() *Store {
	return &Store{clock: time.Now}
}

// SetCurrent replaces the session's result with a new analysis
func (s *Store) SetCurrent(result *types.FeedbackResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = result
	s.updatedAt = s.clock()
}

// Current returns the most recent result, or false if no analysis has run
// since the session started or was cleared.
func (s *Store) Current() (*types.FeedbackResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}

// Clear drops the session's result
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.updatedAt = s.clock()
}

// LastActivity reports when the store was last written
func (s *Store) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

func (s *Store) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = s.clock()
}
