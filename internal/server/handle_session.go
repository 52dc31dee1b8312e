package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/stadtaev/citychase/internal/game"
)

// SessionResponse is returned when a new playthrough is created.
type SessionResponse struct {
	Token    string   `json:"token"`
	Snapshot Snapshot `json:"snapshot"`
}

// gameError maps core error kinds onto HTTP statuses. Invalid actions are
// client mistakes; everything else from the core is internal.
func gameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidAction):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrSessionNotFound):
		writeError(w, http.StatusUnauthorized, "invalid or missing session token")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func handleCreateSession(logger *slog.Logger, mgr *game.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, state, err := mgr.Initialize(r.Context())
		if err != nil {
			logger.Error("session initialization failed", "error", err)
			if errors.Is(err, game.ErrRouteGeneration) {
				writeError(w, http.StatusServiceUnavailable, "could not generate a playable route")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("session created", "session_id", state.SessionID)
		writeJSON(w, http.StatusCreated, SessionResponse{
			Token:    token,
			Snapshot: snapshotOf(state, mgr.Catalog()),
		})
	}
}

func handleSessionState(mgr *game.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		state, err := mgr.Restore(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if state == nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		writeJSON(w, http.StatusOK, snapshotOf(state, mgr.Catalog()))
	}
}
