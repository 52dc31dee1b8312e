package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the operator account from configuration if it does not
// exist yet. Idempotent: an existing account keeps its stored credentials.
func SeedAdmin(ctx context.Context, logger *slog.Logger, store Store, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		logger.Info("no admin credentials configured, admin endpoints disabled")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	if err := store.EnsureAdmin(ctx, email, string(hash)); err != nil {
		return err
	}

	logger.Info("admin account ready", "email", email)
	return nil
}
