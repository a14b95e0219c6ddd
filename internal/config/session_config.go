package config

import "time"

type SessionConfig interface {
	GetSessionBackend() string
	GetSessionDatabasePath() string
	GetRememberCookieMaxAge() time.Duration
	GetWelcomeDismissDelay() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

const (
	sessionBackendVar = "SESSION_BACKEND"
	sessionDBPathVar  = "SESSION_DB_PATH"
)

// GetSessionBackend selects the session repository: "memory" or "sqlite".
func (Session) GetSessionBackend() string {
	return GetEnv(sessionBackendVar, "sqlite")
}

func (Session) GetSessionDatabasePath() string {
	return GetEnv(sessionDBPathVar, "./data/sessions.db")
}

func (Session) GetRememberCookieMaxAge() time.Duration {
	return 30 * 24 * time.Hour
}

// GetWelcomeDismissDelay is how long the post-login welcome message stays on
// screen before the page refreshes to the main menu.
func (Session) GetWelcomeDismissDelay() time.Duration {
	return 2 * time.Second
}
