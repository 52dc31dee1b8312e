package server

import (
	"net/http"
	"strings"

	"github.com/stadtaev/citychase/internal/game"
)

type GuessRequest struct {
	CityID string `json:"cityId"`
}

// GuessResponse resolves one destination guess. Message carries the
// narrative beat: an informant greeting on arrival, a not-here brushoff on
// a miss.
type GuessResponse struct {
	Correct           bool     `json:"correct"`
	PointsAwarded     int      `json:"pointsAwarded"`
	AttemptsRemaining int      `json:"attemptsRemaining"`
	GameOver          bool     `json:"gameOver"`
	ReachedFinal      bool     `json:"reachedFinal"`
	Message           string   `json:"message"`
	Snapshot          Snapshot `json:"snapshot"`
}

func handleGuess(mgr *game.Manager, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.CityID = strings.TrimSpace(req.CityID)
		if req.CityID == "" {
			writeError(w, http.StatusBadRequest, "cityId is required")
			return
		}

		var result game.GuessResult
		state, err := mgr.Do(r.Context(), token, func(s *game.SessionState) error {
			res, err := s.EvaluateGuess(mgr.Catalog(), req.CityID)
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

		resp := GuessResponse{
			Correct:           result.Correct,
			PointsAwarded:     result.PointsAwarded,
			AttemptsRemaining: result.AttemptsRemaining,
			GameOver:          result.GameOver,
			ReachedFinal:      result.ReachedFinal,
			Snapshot:          snapshotOf(state, mgr.Catalog()),
		}

		guessed := mgr.Catalog().City(req.CityID)
		switch {
		case result.Correct:
			if guessed != nil {
				resp.Message = guessed.Informant.Greeting
			}
			broker.Publish(token, GameEvent{
				Type:          eventTravelCorrect,
				CityID:        req.CityID,
				PointsAwarded: result.PointsAwarded,
			})
		case result.GameOver:
			broker.Publish(token, GameEvent{Type: eventGameOver, AttemptsRemaining: 0})
		default:
			if guessed != nil {
				resp.Message = guessed.NotHereResponse
			}
			broker.Publish(token, GameEvent{
				Type:              eventTravelWrong,
				CityID:            req.CityID,
				AttemptsRemaining: result.AttemptsRemaining,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
