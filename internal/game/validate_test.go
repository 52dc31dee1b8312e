package game

import (
	"errors"
	"testing"
	"time"
)

func validState(t *testing.T, cat *Catalog) *SessionState {
	t.Helper()
	return readySession(t, cat, 21)
}

func TestValidateStateAccepts(t *testing.T) {
	cat := testCatalog(t, 6)
	s := validState(t, cat)

	if err := ValidateState(s, cat); err != nil {
		t.Fatalf("valid state rejected: %v", err)
	}
}

func TestValidateStateRejects(t *testing.T) {
	cat := testCatalog(t, 6)

	cases := []struct {
		name   string
		mutate func(*SessionState)
	}{
		{"out-of-bounds attempts", func(s *SessionState) { s.Stats.AttemptsRemaining = 99 }},
		{"negative attempts", func(s *SessionState) { s.Stats.AttemptsRemaining = -1 }},
		{"negative score", func(s *SessionState) { s.Stats.Score = -5 }},
		{"empty session id", func(s *SessionState) { s.SessionID = "" }},
		{"unknown phase", func(s *SessionState) { s.Phase = "limbo" }},
		{"route index out of range", func(s *SessionState) { s.RouteIndex = 7 }},
		{"cities completed out of range", func(s *SessionState) { s.Stats.CitiesCompleted = 9 }},
		{"unknown clue level", func(s *SessionState) { s.CurrentClueLevel = "impossible" }},
		{"truncated route", func(s *SessionState) { s.Route = s.Route[:3] }},
		{"unknown visited city", func(s *SessionState) { s.VisitedCities = []string{"atlantis"} }},
		{"won without terminal phase", func(s *SessionState) { s.HasWon = true; s.IsGameComplete = true }},
		{"game_over without failure details", func(s *SessionState) {
			s.Phase = PhaseGameOver
			s.IsGameComplete = true
		}},
		{"conclusion without win flag", func(s *SessionState) {
			s.Phase = PhaseConclusion
			s.IsGameComplete = true
			s.HasWon = false
		}},
		{"duplicate collected clue", func(s *SessionState) {
			c := Clue{ID: "1", Text: "same", Difficulty: TierEasy, SourceCity: "city-00", AboutCity: "city-01", Timestamp: time.Now()}
			d := c
			d.ID = "2"
			s.CollectedClues = []Clue{c, d}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validState(t, cat)
			tc.mutate(s)
			if err := ValidateState(s, cat); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestValidateSessionReset(t *testing.T) {
	fresh := NewSessionState()
	if err := ValidateSessionReset("old-id", fresh); err != nil {
		t.Fatalf("fresh state rejected: %v", err)
	}

	if err := ValidateSessionReset(fresh.SessionID, fresh); !errors.Is(err, ErrValidation) {
		t.Fatal("expected rejection when the session id did not change")
	}

	dirty := NewSessionState()
	dirty.Stats.Score = 3
	if err := ValidateSessionReset("old-id", dirty); !errors.Is(err, ErrValidation) {
		t.Fatal("expected rejection when stats are not at defaults")
	}

	leaked := NewSessionState()
	leaked.CollectedClues = []Clue{{ID: "x", Text: "leftover", SourceCity: "city-00"}}
	if err := ValidateSessionReset("old-id", leaked); !errors.Is(err, ErrValidation) {
		t.Fatal("expected rejection when collections are not empty")
	}
}
