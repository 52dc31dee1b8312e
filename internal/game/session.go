package game

import (
	"strings"

	"github.com/google/uuid"
)

// SessionState is the canonical mutable record of one playthrough. Gameplay
// actions mutate fields in place; only the lifecycle manager replaces the
// record wholesale. Access is single-writer: the HTTP layer serializes
// actions per session before touching it.
type SessionState struct {
	SessionID        string          `json:"sessionId"`
	Phase            Phase           `json:"phase"`
	Route            Route           `json:"route"`
	RouteIndex       int             `json:"routeIndex"`
	VisitedCities    []string        `json:"visitedCities"`
	CollectedClues   []Clue          `json:"collectedClues"`
	CurrentClueLevel Tier            `json:"currentClueLevel"`
	Stats            Stats           `json:"stats"`
	IsGameComplete   bool            `json:"isGameComplete"`
	HasWon           bool            `json:"hasWon"`
	FailureDetails   *FailureDetails `json:"failureDetails"`
	EncounterStep    int             `json:"encounterStep"`
}

// NewSessionState returns an empty pre-route state with a fresh session id
// and default stats. The route is populated by the lifecycle manager.
func NewSessionState() *SessionState {
	return &SessionState{
		SessionID:        uuid.NewString(),
		Phase:            PhaseIntro,
		VisitedCities:    []string{},
		CollectedClues:   []Clue{},
		CurrentClueLevel: TierHard,
		Stats: Stats{
			AttemptsRemaining: DefaultAttempts,
		},
	}
}

// CurrentCityID returns the city the player is currently in, or "" before
// the route exists.
func (s *SessionState) CurrentCityID() string {
	if s.RouteIndex < 0 || s.RouteIndex >= len(s.Route) {
		return ""
	}
	return s.Route[s.RouteIndex]
}

// ShouldPresentFinalDestination reports whether the final city is the sole
// remaining destination. A presentation hint computed from progress, never
// stored.
func (s *SessionState) ShouldPresentFinalDestination() bool {
	return len(s.Route) == RouteLength && s.Stats.CitiesCompleted == RouteLength-1
}

// HasVisited reports whether the player has already left the given city
// behind.
func (s *SessionState) HasVisited(cityID string) bool {
	for _, id := range s.VisitedCities {
		if id == cityID {
			return true
		}
	}
	return false
}

// Start moves the session from intro to investigation at the first city.
func (s *SessionState) Start() error {
	if s.Phase != PhaseIntro {
		return invalidActionErr("cannot start game from phase %q", s.Phase)
	}
	s.Phase = PhaseInvestigation
	s.CurrentClueLevel = TierHard
	return nil
}

// BeginTravel moves the session from investigation to travel, where the
// player picks a destination.
func (s *SessionState) BeginTravel() error {
	if s.Phase != PhaseInvestigation {
		return invalidActionErr("cannot travel from phase %q", s.Phase)
	}
	if s.RouteIndex >= len(s.Route)-1 {
		return invalidActionErr("no remaining destinations")
	}
	s.Phase = PhaseTravel
	return nil
}

// GuessResult describes the outcome of one destination guess.
type GuessResult struct {
	Correct           bool
	PointsAwarded     int
	AttemptsRemaining int
	GameOver          bool
	ReachedFinal      bool
	NewCityID         string
}

// EvaluateGuess resolves a destination guess made during travel. A correct
// guess awards points for the last presented clue tier and advances the
// route; a wrong guess burns an attempt and, at zero attempts, ends the
// game. Guesses naming unknown, current, or already-visited cities are
// rejected with no state mutation.
func (s *SessionState) EvaluateGuess(cat *Catalog, cityID string) (GuessResult, error) {
	if s.Phase != PhaseTravel {
		return GuessResult{}, invalidActionErr("cannot guess from phase %q", s.Phase)
	}
	city := cat.City(cityID)
	if city == nil {
		return GuessResult{}, invalidActionErr("unknown city %q", cityID)
	}
	if cityID == s.CurrentCityID() {
		return GuessResult{}, invalidActionErr("already in %q", cityID)
	}
	if s.HasVisited(cityID) {
		return GuessResult{}, invalidActionErr("already visited %q", cityID)
	}
	if s.RouteIndex >= len(s.Route)-1 {
		return GuessResult{}, invalidActionErr("no remaining route")
	}

	expected := s.Route[s.RouteIndex+1]
	if cityID != expected {
		s.Stats.AttemptsRemaining--
		res := GuessResult{AttemptsRemaining: s.Stats.AttemptsRemaining}
		if s.Stats.AttemptsRemaining <= 0 {
			s.enterGameOver(cat)
			res.GameOver = true
		}
		return res, nil
	}

	points := s.CurrentClueLevel.Points()
	s.Stats.Score += points
	s.VisitedCities = append(s.VisitedCities, s.CurrentCityID())
	s.RouteIndex++
	s.Stats.CitiesCompleted++
	s.CurrentClueLevel = TierHard
	s.Phase = PhaseInvestigation
	s.EncounterStep = 0

	return GuessResult{
		Correct:           true,
		PointsAwarded:     points,
		AttemptsRemaining: s.Stats.AttemptsRemaining,
		ReachedFinal:      city.IsFinal,
		NewCityID:         cityID,
	}, nil
}

func (s *SessionState) enterGameOver(cat *Catalog) {
	s.Phase = PhaseGameOver
	s.IsGameComplete = true
	s.HasWon = false
	s.FailureDetails = &FailureDetails{
		FinalScore:        s.Stats.Score,
		CitiesReached:     s.Stats.CitiesCompleted + 1,
		CluesCollected:    len(s.CollectedClues),
		InvestigationPath: s.investigationPath(cat),
	}
}

func (s *SessionState) investigationPath(cat *Catalog) string {
	ids := append(append([]string{}, s.VisitedCities...), s.CurrentCityID())
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if c := cat.City(id); c != nil {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, " -> ")
}

// EncounterLine is one step of the final-encounter dialogue.
type EncounterLine struct {
	Speaker string
	Text    string
	Done    bool
}

// AdvanceEncounter plays the next step of the final-city encounter: the
// target's statement, the companion's response, then the victory message,
// which closes the session in the conclusion phase.
func (s *SessionState) AdvanceEncounter(cat *Catalog) (EncounterLine, error) {
	if s.Phase != PhaseInvestigation {
		return EncounterLine{}, invalidActionErr("cannot continue from phase %q", s.Phase)
	}
	city := cat.City(s.CurrentCityID())
	if city == nil || !city.IsFinal || city.FinalEncounter == nil {
		return EncounterLine{}, invalidActionErr("no encounter at current city")
	}

	enc := city.FinalEncounter
	switch s.EncounterStep {
	case 0:
		s.EncounterStep = 1
		return EncounterLine{Speaker: "nadine", Text: enc.NadineSpeech}, nil
	case 1:
		s.EncounterStep = 2
		return EncounterLine{Speaker: "steve", Text: enc.SteveResponse}, nil
	case 2:
		s.EncounterStep = 3
		s.Phase = PhaseConclusion
		s.IsGameComplete = true
		s.HasWon = true
		return EncounterLine{Speaker: "narrator", Text: enc.VictoryMessage, Done: true}, nil
	default:
		return EncounterLine{}, invalidActionErr("encounter already complete")
	}
}

// appendClue adds a presented clue, deduplicated by (text, sourceCity).
// Returns false when the pair was already collected.
func (s *SessionState) appendClue(c Clue) bool {
	for _, existing := range s.CollectedClues {
		if existing.Text == c.Text && existing.SourceCity == c.SourceCity {
			return false
		}
	}
	s.CollectedClues = append(s.CollectedClues, c)
	return true
}
