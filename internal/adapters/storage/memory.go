package storage

import (
	"sync"

	"studyspace-client/internal/core/domain"
)

// MemoryStore keeps the session in memory for the lifetime of the process
type MemoryStore struct {
	mu      sync.RWMutex
	session domain.Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read() (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return normalize(s.session), nil
}

func (s *MemoryStore) Write(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	return nil
}
