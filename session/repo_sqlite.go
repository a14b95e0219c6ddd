package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jrsteele09/go-product-admin/internal/errors"
)

// SQLiteRepo persists sessions and remembered credentials in a local SQLite
// database so both survive a restart.
type SQLiteRepo struct {
	db *sql.DB
}

// OpenSQLiteRepo opens (and if necessary creates) the session database at
// the given path and runs the schema migration.
func OpenSQLiteRepo(path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create session database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	repo := &SQLiteRepo{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}
	return repo, nil
}

// Close closes the underlying database connection
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepo) migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			token TEXT NOT NULL,
			is_admin INTEGER NOT NULL DEFAULT 0,
			username TEXT NOT NULL DEFAULT '',
			welcome_shown INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS remembered_credentials (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			password TEXT NOT NULL
		);
	`)
	return err
}

// Upsert creates or updates a session row
func (r *SQLiteRepo) Upsert(sess Session) error {
	if sess.ID == "" {
		return fmt.Errorf("session ID is required")
	}

	_, err := r.db.Exec(`
		INSERT INTO sessions (id, token, is_admin, username, welcome_shown, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			is_admin = excluded.is_admin,
			username = excluded.username,
			welcome_shown = excluded.welcome_shown
	`, sess.ID, sess.Token, sess.IsAdmin, sess.Username, sess.WelcomeShown, sess.CreatedAt)
	return err
}

// Get retrieves a session by its ID
func (r *SQLiteRepo) Get(sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, errors.ErrNoSession
	}

	var sess Session
	err := r.db.QueryRow(`
		SELECT id, token, is_admin, username, welcome_shown, created_at
		FROM sessions WHERE id = ?
	`, sessionID).Scan(&sess.ID, &sess.Token, &sess.IsAdmin, &sess.Username, &sess.WelcomeShown, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return Session{}, errors.ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Delete removes a session row. Deleting a missing session is a no-op.
func (r *SQLiteRepo) Delete(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}

// UpsertRemembered stores remembered credentials
func (r *SQLiteRepo) UpsertRemembered(creds RememberedCredentials) error {
	if creds.ID == "" {
		return fmt.Errorf("remember ID is required")
	}

	_, err := r.db.Exec(`
		INSERT INTO remembered_credentials (id, username, password)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			password = excluded.password
	`, creds.ID, creds.Username, creds.Password)
	return err
}

// GetRemembered retrieves remembered credentials by the remember cookie ID
func (r *SQLiteRepo) GetRemembered(rememberID string) (RememberedCredentials, error) {
	if rememberID == "" {
		return RememberedCredentials{}, errors.ErrNotFound
	}

	var creds RememberedCredentials
	err := r.db.QueryRow(`
		SELECT id, username, password FROM remembered_credentials WHERE id = ?
	`, rememberID).Scan(&creds.ID, &creds.Username, &creds.Password)
	if err == sql.ErrNoRows {
		return RememberedCredentials{}, errors.ErrNotFound
	}
	if err != nil {
		return RememberedCredentials{}, err
	}
	return creds, nil
}

// DeleteRemembered erases remembered credentials
func (r *SQLiteRepo) DeleteRemembered(rememberID string) error {
	_, err := r.db.Exec(`DELETE FROM remembered_credentials WHERE id = ?`, rememberID)
	return err
}
