package server

import (
	"net/http"

	"github.com/stadtaev/citychase/internal/game"
)

// AdminCitySummary describes one catalog city for operators, including the
// clue pool sizes players never see.
type AdminCitySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	IsFinal   bool   `json:"isFinal"`
	EasyClues int    `json:"easyClues"`
	MedClues  int    `json:"mediumClues"`
	HardClues int    `json:"difficultClues"`
	Informant string `json:"informant"`
}

type AdminCatalogResponse struct {
	Cities    []AdminCitySummary `json:"cities"`
	FinalCity string             `json:"finalCity"`
}

func handleAdminCatalog(mgr *game.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat := mgr.Catalog()

		resp := AdminCatalogResponse{Cities: []AdminCitySummary{}}
		if final := cat.FinalCity(); final != nil {
			resp.FinalCity = final.ID
		}
		for _, c := range cat.Cities {
			resp.Cities = append(resp.Cities, AdminCitySummary{
				ID:        c.ID,
				Name:      c.Name,
				Country:   c.Country,
				IsFinal:   c.IsFinal,
				EasyClues: len(c.Clues.Easy),
				MedClues:  len(c.Clues.Medium),
				HardClues: len(c.Clues.Difficult),
				Informant: c.Informant.Name,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

type AdminSessionsResponse struct {
	Sessions []SessionSummary `json:"sessions"`
}

func handleAdminSessions(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := store.ListSessions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if sessions == nil {
			sessions = []SessionSummary{}
		}
		writeJSON(w, http.StatusOK, AdminSessionsResponse{Sessions: sessions})
	}
}
