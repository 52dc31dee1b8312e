package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/stadtaev/citychase/internal/game"
)

func handleReset(logger *slog.Logger, mgr *game.Manager, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		state, err := mgr.Reset(r.Context(), token)
		if err != nil {
			logger.Error("session reset failed", "error", err)
			if errors.Is(err, game.ErrRouteGeneration) {
				writeError(w, http.StatusServiceUnavailable, "could not generate a playable route")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("session reset", "session_id", state.SessionID)
		broker.Publish(token, GameEvent{Type: eventReset})
		writeJSON(w, http.StatusOK, snapshotOf(state, mgr.Catalog()))
	}
}
