// Package repository provides storage backends for processing sessions.
package repository

import (
	"sync"

	"pdf-footer-remover/internal/domain"
)

// MemorySessionRepository is a process-wide session cache. Entries live
// until explicitly deleted; there is no implicit expiry, matching the
// session lifecycle of the UI shell this service backs.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemorySessionRepository creates an empty in-memory session repository
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*domain.Session),
	}
}

// Store caches a session, replacing any previous entry with the same ID.
func (r *MemorySessionRepository) Store(session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

// Retrieve returns the cached session or domain.ErrSessionNotFound.
func (r *MemorySessionRepository) Retrieve(sessionID string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session from the cache. Deleting an unknown session
// returns domain.ErrSessionNotFound.
func (r *MemorySessionRepository) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}
