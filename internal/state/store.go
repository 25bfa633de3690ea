package state

import (
	"sync"

	"shopbot/internal/domain"
)

// Store keeps the per-user conversation state and transient input
// buffers. There is no expiry: an abandoned multi-step entry keeps
// its tag until the user triggers a menu action, which resets it.
type Store struct {
	mu      sync.RWMutex
	tags    map[int64]domain.StateTag
	buffers map[int64]*domain.InputBuffer
}

// NewStore creates an empty conversation state store
func NewStore() *Store {
	return &Store{
		tags:    make(map[int64]domain.StateTag),
		buffers: make(map[int64]*domain.InputBuffer),
	}
}

// Get returns the user's current tag, or StateDefault if none is set
func (s *Store) Get(userID int64) domain.StateTag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if tag, ok := s.tags[userID]; ok {
		return tag
	}
	return domain.StateDefault
}

// Set replaces the user's tag
func (s *Store) Set(userID int64, tag domain.StateTag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[userID] = tag
}

// Reset returns the user to the default tag and drops any buffered input
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[userID] = domain.StateDefault
	delete(s.buffers, userID)
}

// Buffer returns the user's transient input buffer, or an empty one
func (s *Store) Buffer(userID int64) domain.InputBuffer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if buf, ok := s.buffers[userID]; ok {
		return *buf
	}
	return domain.InputBuffer{}
}

// SetBuffer replaces the user's transient input buffer
func (s *Store) SetBuffer(userID int64, buf domain.InputBuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers[userID] = &buf
}

// ClearBuffer drops the user's transient input buffer
func (s *Store) ClearBuffer(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buffers, userID)
}
