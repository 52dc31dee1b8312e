package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stadtaev/citychase/internal/game"
)

// SQLiteStore implements Store over the migrated sqlite schema. Session
// blobs live in a plain key-value table; the game core treats them as
// opaque strings.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM sessions WHERE key = ?
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", game.ErrBlobNotFound
	}
	return value, err
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value,
		    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, key, value)
	return err
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?`, key)
	return err
}

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return id, hash, err
}

// EnsureAdmin creates the admin account if the email is not registered
// yet. Existing accounts keep their stored hash.
func (s *SQLiteStore) EnsureAdmin(ctx context.Context, email, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES (?, ?)
		ON CONFLICT (email) DO NOTHING
	`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("ensuring admin account: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	// Keys are "session:<token>"; expose the bare token.
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(key, 9), updated_at, length(value)
		FROM sessions
		WHERE key LIKE 'session:%'
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.Token, &s.SavedAt, &s.SizeBytes); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
