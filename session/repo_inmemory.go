package session

import (
	"fmt"
	"sync"

	"github.com/jrsteele09/go-product-admin/internal/errors"
)

// InMemoryRepo is an in-memory implementation of Repo. Sessions do not
// survive a restart; suitable for development and tests.
type InMemoryRepo struct {
	mu         sync.RWMutex
	sessions   map[string]Session
	remembered map[string]RememberedCredentials
}

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions:   make(map[string]Session),
		remembered: make(map[string]RememberedCredentials),
	}
}

// Upsert creates or updates a session
func (r *InMemoryRepo) Upsert(sess Session) error {
	if sess.ID == "" {
		return fmt.Errorf("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID] = sess
	return nil
}

// Get retrieves a session by its ID
func (r *InMemoryRepo) Get(sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, errors.ErrNoSession
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, errors.ErrNoSession
	}
	return sess, nil
}

// Delete removes a session. Deleting a missing session is a no-op.
func (r *InMemoryRepo) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

// UpsertRemembered stores remembered credentials
func (r *InMemoryRepo) UpsertRemembered(creds RememberedCredentials) error {
	if creds.ID == "" {
		return fmt.Errorf("remember ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.remembered[creds.ID] = creds
	return nil
}

// GetRemembered retrieves remembered credentials by the remember cookie ID
func (r *InMemoryRepo) GetRemembered(rememberID string) (RememberedCredentials, error) {
	if rememberID == "" {
		return RememberedCredentials{}, errors.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	creds, ok := r.remembered[rememberID]
	if !ok {
		return RememberedCredentials{}, errors.ErrNotFound
	}
	return creds, nil
}

// DeleteRemembered erases remembered credentials. Missing records are a
// no-op.
func (r *InMemoryRepo) DeleteRemembered(rememberID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.remembered, rememberID)
	return nil
}
