package game

// ValidateState checks every observable invariant of a session state.
// Called on every restore from the durable store; any violation rejects
// the whole record; there is no partial repair.
func ValidateState(s *SessionState, cat *Catalog) error {
	if s == nil {
		return validationErr("state", "nil")
	}
	if s.SessionID == "" {
		return validationErr("sessionId", "empty")
	}

	switch s.Phase {
	case PhaseIntro, PhaseInvestigation, PhaseTravel, PhaseConclusion, PhaseGameOver:
	default:
		return validationErr("phase", "unknown phase %q", s.Phase)
	}

	if len(s.Route) > 0 {
		if err := ValidateRoute(s.Route, cat); err != nil {
			return err
		}
		if s.RouteIndex < 0 || s.RouteIndex >= RouteLength {
			return validationErr("routeIndex", "%d out of range", s.RouteIndex)
		}
	} else if s.RouteIndex != 0 {
		return validationErr("routeIndex", "%d without a route", s.RouteIndex)
	}

	if s.Stats.Score < 0 {
		return validationErr("stats.score", "%d negative", s.Stats.Score)
	}
	if s.Stats.AttemptsRemaining < 0 || s.Stats.AttemptsRemaining > DefaultAttempts {
		return validationErr("stats.attemptsRemaining", "%d out of range", s.Stats.AttemptsRemaining)
	}
	if s.Stats.CitiesCompleted < 0 || s.Stats.CitiesCompleted > RouteLength {
		return validationErr("stats.citiesCompleted", "%d out of range", s.Stats.CitiesCompleted)
	}

	if !s.CurrentClueLevel.Valid() {
		return validationErr("currentClueLevel", "unknown tier %q", s.CurrentClueLevel)
	}

	seen := make(map[string]bool, len(s.CollectedClues))
	for _, c := range s.CollectedClues {
		key := c.Text + "\x00" + c.SourceCity
		if seen[key] {
			return validationErr("collectedClues", "duplicate clue %q from %q", c.Text, c.SourceCity)
		}
		seen[key] = true
		if !c.Difficulty.Valid() {
			return validationErr("collectedClues", "unknown tier %q", c.Difficulty)
		}
	}

	for _, id := range s.VisitedCities {
		if cat.City(id) == nil {
			return validationErr("visitedCities", "unknown city %q", id)
		}
	}

	switch s.Phase {
	case PhaseGameOver:
		if !s.IsGameComplete || s.HasWon {
			return validationErr("phase", "game_over requires complete and not won")
		}
		if s.FailureDetails == nil {
			return validationErr("failureDetails", "missing in game_over")
		}
	case PhaseConclusion:
		if !s.IsGameComplete || !s.HasWon {
			return validationErr("phase", "conclusion requires complete and won")
		}
	default:
		if s.IsGameComplete || s.HasWon {
			return validationErr("phase", "complete flags set in non-terminal phase %q", s.Phase)
		}
		if s.FailureDetails != nil {
			return validationErr("failureDetails", "set in non-terminal phase %q", s.Phase)
		}
	}

	if s.EncounterStep < 0 || s.EncounterStep > 3 {
		return validationErr("encounterStep", "%d out of range", s.EncounterStep)
	}

	return nil
}

// ValidateSessionReset is the post-condition check after a reset: the
// session id changed and the state is shape-identical to a fresh one.
func ValidateSessionReset(oldSessionID string, s *SessionState) error {
	if s.SessionID == oldSessionID {
		return validationErr("sessionId", "unchanged after reset")
	}
	if len(s.VisitedCities) != 0 || len(s.CollectedClues) != 0 {
		return validationErr("collections", "not empty after reset")
	}
	want := Stats{AttemptsRemaining: DefaultAttempts}
	if s.Stats != want {
		return validationErr("stats", "not at defaults after reset: %+v", s.Stats)
	}
	if s.IsGameComplete || s.HasWon || s.FailureDetails != nil {
		return validationErr("flags", "terminal data survived reset")
	}
	if s.Phase != PhaseIntro {
		return validationErr("phase", "%q after reset", s.Phase)
	}
	return nil
}
