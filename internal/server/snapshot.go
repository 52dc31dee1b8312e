package server

import (
	"time"

	"github.com/stadtaev/citychase/internal/game"
)

// CityInfo is the public shape of a city. Clue pools and final-city flags
// never cross this boundary.
type CityInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type StatsInfo struct {
	Score             int `json:"score"`
	AttemptsRemaining int `json:"attemptsRemaining"`
	CitiesCompleted   int `json:"citiesCompleted"`
}

type ClueInfo struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Difficulty string    `json:"difficulty"`
	SourceCity string    `json:"sourceCity"`
	Timestamp  time.Time `json:"timestamp"`
}

type FailureInfo struct {
	FinalScore        int    `json:"finalScore"`
	CitiesReached     int    `json:"citiesReached"`
	CluesCollected    int    `json:"cluesCollected"`
	InvestigationPath string `json:"investigationPath"`
}

// Snapshot is the read-only view the presentation layer renders after each
// action. The route itself is withheld: knowing it would spoil every guess.
type Snapshot struct {
	SessionID                     string       `json:"sessionId"`
	Phase                         string       `json:"phase"`
	CurrentCity                   *CityInfo    `json:"currentCity"`
	Stats                         StatsInfo    `json:"stats"`
	CurrentClueLevel              string       `json:"currentClueLevel"`
	CollectedClues                []ClueInfo   `json:"collectedClues"`
	VisitedCities                 []CityInfo   `json:"visitedCities"`
	ShouldPresentFinalDestination bool         `json:"shouldPresentFinalDestination"`
	IsGameComplete                bool         `json:"isGameComplete"`
	HasWon                        bool         `json:"hasWon"`
	FailureDetails                *FailureInfo `json:"failureDetails,omitempty"`
}

func cityInfo(c *game.City) *CityInfo {
	if c == nil {
		return nil
	}
	return &CityInfo{ID: c.ID, Name: c.Name, Country: c.Country}
}

func snapshotOf(s *game.SessionState, cat *game.Catalog) Snapshot {
	snap := Snapshot{
		SessionID:                     s.SessionID,
		Phase:                         string(s.Phase),
		CurrentCity:                   cityInfo(cat.City(s.CurrentCityID())),
		CurrentClueLevel:              string(s.CurrentClueLevel),
		CollectedClues:                []ClueInfo{},
		VisitedCities:                 []CityInfo{},
		ShouldPresentFinalDestination: s.ShouldPresentFinalDestination(),
		IsGameComplete:                s.IsGameComplete,
		HasWon:                        s.HasWon,
		Stats: StatsInfo{
			Score:             s.Stats.Score,
			AttemptsRemaining: s.Stats.AttemptsRemaining,
			CitiesCompleted:   s.Stats.CitiesCompleted,
		},
	}

	for _, c := range s.CollectedClues {
		snap.CollectedClues = append(snap.CollectedClues, ClueInfo{
			ID:         c.ID,
			Text:       c.Text,
			Difficulty: string(c.Difficulty),
			SourceCity: c.SourceCity,
			Timestamp:  c.Timestamp,
		})
	}
	for _, id := range s.VisitedCities {
		if info := cityInfo(cat.City(id)); info != nil {
			snap.VisitedCities = append(snap.VisitedCities, *info)
		}
	}
	if s.FailureDetails != nil {
		snap.FailureDetails = &FailureInfo{
			FinalScore:        s.FailureDetails.FinalScore,
			CitiesReached:     s.FailureDetails.CitiesReached,
			CluesCollected:    s.FailureDetails.CluesCollected,
			InvestigationPath: s.FailureDetails.InvestigationPath,
		}
	}
	return snap
}
