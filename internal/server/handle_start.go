package server

import (
	"net/http"

	"github.com/stadtaev/citychase/internal/game"
)

// StartResponse opens the investigation at the first city.
type StartResponse struct {
	Informant string   `json:"informant"`
	Greeting  string   `json:"greeting"`
	Snapshot  Snapshot `json:"snapshot"`
}

func handleStart(mgr *game.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		state, err := mgr.Do(r.Context(), token, func(s *game.SessionState) error {
			return s.Start()
		})
		if err != nil {
			gameError(w, err)
			return
		}

		resp := StartResponse{Snapshot: snapshotOf(state, mgr.Catalog())}
		if city := mgr.Catalog().City(state.CurrentCityID()); city != nil {
			resp.Informant = city.Informant.Name
			resp.Greeting = city.Informant.Greeting
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
