package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/jrsteele09/go-product-admin/internal/errors"
)

// Manager owns every read and write of session state. Handlers receive the
// Manager instead of touching storage directly, so any of them can check
// auth while the dependency stays explicit.
type Manager struct {
	repo Repo
}

// NewManager creates a Manager over the given repository
func NewManager(repo Repo) *Manager {
	return &Manager{repo: repo}
}

// Create starts a fresh session for a successful login. The welcome flag
// always starts false so the welcome message reappears once per session.
func (m *Manager) Create(token string, isAdmin bool, username string) (Session, error) {
	sess := Session{
		ID:        uuid.New().String(),
		Token:     token,
		IsAdmin:   isAdmin,
		Username:  username,
		CreatedAt: time.Now(),
	}
	if err := m.repo.Upsert(sess); err != nil {
		return Session{}, errors.Wrapf(err, "[Manager Create] storing session")
	}
	return sess, nil
}

// Get returns the session for the given ID, or ErrNoSession.
func (m *Manager) Get(sessionID string) (Session, error) {
	return m.repo.Get(sessionID)
}

// Clear removes the session: token, role flag and welcome flag go together.
// Clearing a session that does not exist is a no-op.
func (m *Manager) Clear(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.repo.Delete(sessionID)
}

// MarkWelcomeShown records that the one-time welcome message has been
// displayed for this session.
func (m *Manager) MarkWelcomeShown(sessionID string) error {
	sess, err := m.repo.Get(sessionID)
	if err != nil {
		return err
	}
	sess.WelcomeShown = true
	return m.repo.Upsert(sess)
}

// Remember persists credentials for the login form to prefill. When
// rememberID is empty a new ID is issued; the caller sets it as a
// long-lived cookie. The credentials are stored in clear text so the form
// can prefill both fields.
func (m *Manager) Remember(rememberID, username, password string) (string, error) {
	if rememberID == "" {
		rememberID = uuid.New().String()
	}
	creds := RememberedCredentials{ID: rememberID, Username: username, Password: password}
	if err := m.repo.UpsertRemembered(creds); err != nil {
		return "", errors.Wrapf(err, "[Manager Remember] storing credentials")
	}
	return rememberID, nil
}

// Remembered returns the stored credentials for the remember cookie ID.
func (m *Manager) Remembered(rememberID string) (RememberedCredentials, error) {
	return m.repo.GetRemembered(rememberID)
}

// ClearRemembered erases any previously remembered credentials.
func (m *Manager) ClearRemembered(rememberID string) error {
	if rememberID == "" {
		return nil
	}
	return m.repo.DeleteRemembered(rememberID)
}
