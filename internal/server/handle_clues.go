package server

import (
	"net/http"

	"github.com/stadtaev/citychase/internal/game"
)

// CluesResponse carries what the current informant had to say. NoMoreInfo
// means the informant is out of hints for good, not that something failed.
type CluesResponse struct {
	Clues      []ClueInfo `json:"clues"`
	Tier       string     `json:"tier,omitempty"`
	NoMoreInfo bool       `json:"noMoreInfo"`
	Informant  string     `json:"informant"`
	Farewell   string     `json:"farewell"`
	Snapshot   Snapshot   `json:"snapshot"`
}

func handleClues(mgr *game.Manager, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var result game.ClueResult
		state, err := mgr.Do(r.Context(), token, func(s *game.SessionState) error {
			engine := mgr.ClueEngine(token)
			res, err := engine.RequestClues(s, mgr.Catalog())
			if err != nil {
				return err
			}
			result = res
			return nil
		})
		if err != nil {
			gameError(w, err)
			return
		}

		resp := CluesResponse{
			Clues:      []ClueInfo{},
			NoMoreInfo: result.NoMoreInfo,
			Snapshot:   snapshotOf(state, mgr.Catalog()),
		}
		if city := mgr.Catalog().City(state.CurrentCityID()); city != nil {
			resp.Informant = city.Informant.Name
			if result.NoMoreInfo {
				resp.Farewell = city.Informant.FarewellUnhelpful
			} else {
				resp.Farewell = city.Informant.FarewellHelpful
			}
		}
		for _, c := range result.Clues {
			resp.Clues = append(resp.Clues, ClueInfo{
				ID:         c.ID,
				Text:       c.Text,
				Difficulty: string(c.Difficulty),
				SourceCity: c.SourceCity,
				Timestamp:  c.Timestamp,
			})
		}
		if !result.NoMoreInfo {
			resp.Tier = string(result.Tier)
		}

		if result.NoMoreInfo {
			broker.Publish(token, GameEvent{Type: eventNoMoreInfo})
		} else {
			broker.Publish(token, GameEvent{Type: eventCluePresented, Tier: string(result.Tier)})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
