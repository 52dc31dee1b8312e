package server

import (
	"net/http"

	"github.com/stadtaev/citychase/internal/game"
)

// ContinueResponse advances the final-encounter dialogue one step.
type ContinueResponse struct {
	Speaker  string   `json:"speaker"`
	Text     string   `json:"text"`
	Done     bool     `json:"done"`
	Snapshot Snapshot `json:"snapshot"`
}

func handleContinue(mgr *game.Manager, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var line game.EncounterLine
		state, err := mgr.Do(r.Context(), token, func(s *game.SessionState) error {
			l, err := s.AdvanceEncounter(mgr.Catalog())
			if err != nil {
				return err
			}
			line = l
			return nil
		})
		if err != nil {
			gameError(w, err)
			return
		}

		if line.Done {
			broker.Publish(token, GameEvent{Type: eventVictory, CityID: state.CurrentCityID()})
		}

		writeJSON(w, http.StatusOK, ContinueResponse{
			Speaker:  line.Speaker,
			Text:     line.Text,
			Done:     line.Done,
			Snapshot: snapshotOf(state, mgr.Catalog()),
		})
	}
}
