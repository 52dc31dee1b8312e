package server

import (
	"net/http"

	"github.com/stadtaev/citychase/internal/game"
)

// TravelResponse lists the destinations the player can guess. Once four
// stops are complete only the final city remains on offer.
type TravelResponse struct {
	Destinations []CityInfo `json:"destinations"`
	Snapshot     Snapshot   `json:"snapshot"`
}

func handleTravel(mgr *game.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		state, err := mgr.Do(r.Context(), token, func(s *game.SessionState) error {
			return s.BeginTravel()
		})
		if err != nil {
			gameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TravelResponse{
			Destinations: destinationsFor(state, mgr.Catalog()),
			Snapshot:     snapshotOf(state, mgr.Catalog()),
		})
	}
}

func destinationsFor(s *game.SessionState, cat *game.Catalog) []CityInfo {
	// The final city enters the offers only on the last leg, when it is
	// the sole stop left on the route.
	lastLeg := len(s.Route) > 0 && s.RouteIndex == len(s.Route)-2
	if lastLeg {
		if final := cat.FinalCity(); final != nil {
			return []CityInfo{*cityInfo(final)}
		}
	}

	out := []CityInfo{}
	for _, c := range cat.Cities {
		if c.ID == s.CurrentCityID() || s.HasVisited(c.ID) || c.IsFinal {
			continue
		}
		out = append(out, *cityInfo(&c))
	}
	return out
}
