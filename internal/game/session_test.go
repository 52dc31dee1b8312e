package game

import (
	"errors"
	"testing"
)

func TestStartTransition(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 1)

	if s.Phase != PhaseInvestigation {
		t.Fatalf("expected investigation after start, got %s", s.Phase)
	}
	if err := s.Start(); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction on double start, got %v", err)
	}
}

func TestCorrectGuessAdvances(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 5)
	first := s.CurrentCityID()
	next := s.Route[1]

	s.CurrentClueLevel = TierMedium
	if err := s.BeginTravel(); err != nil {
		t.Fatalf("begin travel: %v", err)
	}

	res, err := s.EvaluateGuess(cat, next)
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if !res.Correct {
		t.Fatal("expected correct guess")
	}
	if res.PointsAwarded != 2 {
		t.Errorf("medium clue level should award 2 points, got %d", res.PointsAwarded)
	}
	if s.Stats.Score != 2 {
		t.Errorf("score %d, want 2", s.Stats.Score)
	}
	if s.Phase != PhaseInvestigation {
		t.Errorf("phase %s, want investigation", s.Phase)
	}
	if s.RouteIndex != 1 || s.CurrentCityID() != next {
		t.Errorf("routeIndex %d, currentCity %s", s.RouteIndex, s.CurrentCityID())
	}
	if s.Stats.CitiesCompleted != 1 {
		t.Errorf("citiesCompleted %d, want 1", s.Stats.CitiesCompleted)
	}
	if !s.HasVisited(first) {
		t.Errorf("expected %s in visited cities", first)
	}
	if s.CurrentClueLevel != TierHard {
		t.Errorf("clue level must reset to hard on arrival, got %s", s.CurrentClueLevel)
	}
}

func TestWrongGuessBurnsAttempt(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 5)
	if err := s.BeginTravel(); err != nil {
		t.Fatalf("begin travel: %v", err)
	}

	wrong := wrongDestination(t, s, cat)
	res, err := s.EvaluateGuess(cat, wrong)
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if res.Correct {
		t.Fatal("expected wrong guess")
	}
	if s.Stats.AttemptsRemaining != DefaultAttempts-1 {
		t.Errorf("attempts %d, want %d", s.Stats.AttemptsRemaining, DefaultAttempts-1)
	}
	if s.Phase != PhaseTravel {
		t.Errorf("phase %s, want travel for another guess", s.Phase)
	}
	if s.Stats.Score != 0 {
		t.Errorf("wrong guess must not change score, got %d", s.Stats.Score)
	}
}

// Scenario: a player with one attempt left submits a wrong guess. Attempts
// hit zero and the game deterministically ends in game_over.
func TestLastAttemptWrongGuessEndsGame(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 5)
	s.Stats.AttemptsRemaining = 1
	if err := s.BeginTravel(); err != nil {
		t.Fatalf("begin travel: %v", err)
	}

	res, err := s.EvaluateGuess(cat, wrongDestination(t, s, cat))
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if !res.GameOver {
		t.Fatal("expected game over result")
	}
	if s.Phase != PhaseGameOver {
		t.Fatalf("phase %s, want game_over", s.Phase)
	}
	if !s.IsGameComplete || s.HasWon {
		t.Error("game_over requires isGameComplete and not hasWon")
	}
	if s.Stats.AttemptsRemaining != 0 {
		t.Errorf("attempts %d, want 0", s.Stats.AttemptsRemaining)
	}
	if s.FailureDetails == nil {
		t.Fatal("expected failure details")
	}
	if s.FailureDetails.InvestigationPath == "" {
		t.Error("expected a reconstructed investigation path")
	}
}

func TestAttemptMonotonicity(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 5)
	if err := s.BeginTravel(); err != nil {
		t.Fatalf("begin travel: %v", err)
	}

	prev := s.Stats.AttemptsRemaining
	for s.Phase == PhaseTravel {
		if _, err := s.EvaluateGuess(cat, wrongDestination(t, s, cat)); err != nil {
			t.Fatalf("guess: %v", err)
		}
		if s.Stats.AttemptsRemaining > prev {
			t.Fatalf("attempts increased from %d to %d", prev, s.Stats.AttemptsRemaining)
		}
		prev = s.Stats.AttemptsRemaining
	}

	if s.Phase != PhaseGameOver {
		t.Fatalf("phase %s after exhausting attempts, want game_over", s.Phase)
	}
}

func TestInvalidGuessesRejectedWithoutMutation(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 5)
	if err := s.BeginTravel(); err != nil {
		t.Fatalf("begin travel: %v", err)
	}

	before := *s
	for _, target := range []string{"atlantis", s.CurrentCityID()} {
		_, err := s.EvaluateGuess(cat, target)
		if !errors.Is(err, ErrInvalidAction) {
			t.Fatalf("guess %q: expected ErrInvalidAction, got %v", target, err)
		}
	}
	if s.Stats != before.Stats || s.Phase != before.Phase || s.RouteIndex != before.RouteIndex {
		t.Error("rejected guesses must not mutate state")
	}
}

func TestGuessVisitedCityRejected(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 5)

	if err := s.BeginTravel(); err != nil {
		t.Fatalf("begin travel: %v", err)
	}
	if _, err := s.EvaluateGuess(cat, s.Route[1]); err != nil {
		t.Fatalf("guess: %v", err)
	}
	if err := s.BeginTravel(); err != nil {
		t.Fatalf("begin travel: %v", err)
	}

	_, err := s.EvaluateGuess(cat, s.Route[0])
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction for visited city, got %v", err)
	}
}

func TestFinalDestinationHint(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 8)

	if s.ShouldPresentFinalDestination() {
		t.Fatal("hint must be false at the start")
	}

	// Complete the four non-final stops.
	for i := 0; i < RouteLength-1; i++ {
		if err := s.BeginTravel(); err != nil {
			t.Fatalf("begin travel %d: %v", i, err)
		}
		if _, err := s.EvaluateGuess(cat, s.Route[s.RouteIndex+1]); err != nil {
			t.Fatalf("guess %d: %v", i, err)
		}
		wantHint := i == RouteLength-2
		if got := s.ShouldPresentFinalDestination(); got != wantHint {
			t.Errorf("after %d stops: hint %v, want %v", i+1, got, wantHint)
		}
	}
}

func TestFinalEncounterSequence(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 8)
	walkToFinal(t, s, cat)

	enc := cat.FinalCity().FinalEncounter

	steps := []struct {
		speaker string
		text    string
		done    bool
	}{
		{"nadine", enc.NadineSpeech, false},
		{"steve", enc.SteveResponse, false},
		{"narrator", enc.VictoryMessage, true},
	}
	for i, want := range steps {
		line, err := s.AdvanceEncounter(cat)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if line.Speaker != want.speaker || line.Text != want.text || line.Done != want.done {
			t.Fatalf("step %d: got %+v", i, line)
		}
	}

	if s.Phase != PhaseConclusion {
		t.Fatalf("phase %s, want conclusion", s.Phase)
	}
	if !s.IsGameComplete || !s.HasWon {
		t.Error("conclusion requires isGameComplete and hasWon")
	}

	if _, err := s.AdvanceEncounter(cat); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction after conclusion, got %v", err)
	}
}

func TestEncounterOnlyAtFinalCity(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 8)

	if _, err := s.AdvanceEncounter(cat); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction away from final city, got %v", err)
	}
}

func TestTravelBlockedAtFinalCity(t *testing.T) {
	cat := testCatalog(t, 6)
	s := readySession(t, cat, 8)
	walkToFinal(t, s, cat)

	if err := s.BeginTravel(); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction at final city, got %v", err)
	}
}

// wrongDestination picks a city that is neither current, visited, nor the
// expected next stop.
func wrongDestination(t *testing.T, s *SessionState, cat *Catalog) string {
	t.Helper()
	expected := s.Route[s.RouteIndex+1]
	for _, c := range cat.Cities {
		if c.ID == expected || c.ID == s.CurrentCityID() || s.HasVisited(c.ID) {
			continue
		}
		return c.ID
	}
	t.Fatal("no wrong destination available")
	return ""
}
