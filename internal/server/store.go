package server

import (
	"context"
	"errors"

	"github.com/stadtaev/citychase/internal/game"
)

var ErrNotFound = errors.New("not found")

type adminSession struct {
	AdminID string
	Email   string
}

var errNoAdminSession = errors.New("no valid admin session")

// SessionSummary is what the admin listing exposes about one persisted
// playthrough. Routes are deliberately absent: they reveal the answers.
type SessionSummary struct {
	Token     string `json:"token"`
	SavedAt   string `json:"savedAt"`
	SizeBytes int    `json:"sizeBytes"`
}

// Store is the durable storage surface: the blob contract the game core
// persists through, plus the admin account queries.
type Store interface {
	game.BlobStore

	AdminByEmail(ctx context.Context, email string) (id, passwordHash string, err error)
	EnsureAdmin(ctx context.Context, email, passwordHash string) error
	CreateAdminSession(ctx context.Context, adminID string) (string, error)
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
	DeleteAdminSession(ctx context.Context, sessionID string) error

	ListSessions(ctx context.Context) ([]SessionSummary, error)
}
