package game

import (
	"time"

	"github.com/google/uuid"
)

// clueDifficultyCategory tracks which tiers have actually been presented,
// so underrepresented difficulties can be softly preferred.
const clueDifficultyCategory = "clueDifficulty"

// ClueProgressionEngine selects clues per city and tier with fairness and
// progression rules. One engine serves one session; its tracker is
// discarded on reset.
type ClueProgressionEngine struct {
	tracker *FairnessTracker
	rnd     RandomSource
	now     func() time.Time
}

// NewClueEngine returns an engine drawing through the given tracker and
// random source.
func NewClueEngine(tracker *FairnessTracker, rnd RandomSource) *ClueProgressionEngine {
	return &ClueProgressionEngine{tracker: tracker, rnd: rnd, now: time.Now}
}

// SelectClues draws up to limit clue strings from city's pool for the
// given tier, without replacement against the presented set, using
// avoid-recent fairness keyed per difficulty. An empty pool yields no
// clues; that is not an error.
func (e *ClueProgressionEngine) SelectClues(city *City, tier Tier, limit int, presented map[string]bool) []string {
	pool := city.Clues.ForTier(tier)

	remaining := make([]string, 0, len(pool))
	for _, text := range pool {
		if !presented[text] {
			remaining = append(remaining, text)
		}
	}

	category := ClueCategory(tier)
	var out []string
	for len(out) < limit && len(remaining) > 0 {
		eligible := e.tracker.EligibleSet(category, remaining)

		// Softly prefer options drawn less often so far.
		preferred := make([]string, 0, len(eligible))
		for _, text := range eligible {
			if e.tracker.IsUnderrepresented(category, text) {
				preferred = append(preferred, text)
			}
		}
		if len(preferred) > 0 {
			eligible = preferred
		}

		pick := eligible[randIndex(e.rnd, len(eligible))]
		e.tracker.RecordSelection(category, pick)
		out = append(out, pick)

		for i, text := range remaining {
			if text == pick {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return out
}

// ClueResult is the outcome of one informant questioning. NoMoreInfo is a
// terminal "nothing more to learn here" signal, not a failure.
type ClueResult struct {
	Clues      []Clue
	Tier       Tier
	NoMoreInfo bool
}

// RequestClues asks the current city's informant about the next
// destination. Each request attempts the hard tier first and falls through
// to medium, then easy, as tiers run out of unpresented clues; once easy is
// exhausted too the result reports NoMoreInfo. The tier that actually
// yields a clue becomes the session's current clue level, which later
// drives correct-guess scoring.
func (e *ClueProgressionEngine) RequestClues(s *SessionState, cat *Catalog) (ClueResult, error) {
	if s.Phase != PhaseInvestigation {
		return ClueResult{}, invalidActionErr("cannot request clues from phase %q", s.Phase)
	}
	if s.RouteIndex >= len(s.Route)-1 {
		return ClueResult{}, invalidActionErr("no upcoming destination to investigate")
	}

	source := s.CurrentCityID()
	target := cat.City(s.Route[s.RouteIndex+1])
	if target == nil {
		return ClueResult{}, invalidActionErr("route references unknown city")
	}

	presented := make(map[string]bool)
	for _, c := range s.CollectedClues {
		if c.SourceCity == source {
			presented[c.Text] = true
		}
	}

	for _, tier := range []Tier{TierHard, TierMedium, TierEasy} {
		texts := e.SelectClues(target, tier, 1, presented)
		if len(texts) == 0 {
			continue
		}

		e.tracker.RecordSelection(clueDifficultyCategory, string(tier))
		s.CurrentClueLevel = tier

		clues := make([]Clue, 0, len(texts))
		for _, text := range texts {
			clue := Clue{
				ID:         uuid.NewString(),
				Text:       text,
				Difficulty: tier,
				SourceCity: source,
				AboutCity:  target.ID,
				Timestamp:  e.now(),
			}
			if s.appendClue(clue) {
				clues = append(clues, clue)
			}
		}
		return ClueResult{Clues: clues, Tier: tier}, nil
	}

	return ClueResult{NoMoreInfo: true}, nil
}
