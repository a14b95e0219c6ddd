package session

import "time"

// Session is the authenticated state held for one browser, keyed by the
// session cookie: bearer token, role flag and the one-time welcome flag
// live and die together.
type Session struct {
	ID           string
	Token        string
	IsAdmin      bool
	Username     string
	WelcomeShown bool
	CreatedAt    time.Time
}

// RememberedCredentials is the optional "remember me" record, persisted in
// clear text and independent of any session's lifecycle. Keyed by the
// long-lived remember cookie.
type RememberedCredentials struct {
	ID       string
	Username string
	Password string
}

type Repo interface {
	Upsert(sess Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error

	UpsertRemembered(creds RememberedCredentials) error
	GetRemembered(rememberID string) (RememberedCredentials, error)
	DeleteRemembered(rememberID string) error
}
