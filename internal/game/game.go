// Package game implements the session core of the pursuit game: route
// generation, fairness-biased randomization, clue progression, and the
// per-session state machine. Everything here is pure Go; the HTTP layer
// and the durable store live in internal/server.
package game

import "time"

// Tier is a clue difficulty tier. Harder clues are vaguer and worth more
// points when the destination is guessed correctly.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Points returns the score awarded for a correct guess made off a clue of
// this tier.
func (t Tier) Points() int {
	switch t {
	case TierHard:
		return 3
	case TierMedium:
		return 2
	default:
		return 1
	}
}

// Valid reports whether t is one of the three known tiers.
func (t Tier) Valid() bool {
	return t == TierEasy || t == TierMedium || t == TierHard
}

// Phase is the current stage of a game session. The conclusion and
// game_over phases are terminal: only a full reset leaves them.
type Phase string

const (
	PhaseIntro         Phase = "intro"
	PhaseInvestigation Phase = "investigation"
	PhaseTravel        Phase = "travel"
	PhaseConclusion    Phase = "conclusion"
	PhaseGameOver      Phase = "game_over"
)

// Terminal reports whether p is a phase that only a reset can leave.
func (p Phase) Terminal() bool {
	return p == PhaseConclusion || p == PhaseGameOver
}

// CluePool holds the clue strings describing one city, grouped by tier.
type CluePool struct {
	Easy      []string `json:"easy"`
	Medium    []string `json:"medium"`
	Difficult []string `json:"difficult"`
}

// ForTier returns the pool slice for the given tier.
func (p CluePool) ForTier(t Tier) []string {
	switch t {
	case TierHard:
		return p.Difficult
	case TierMedium:
		return p.Medium
	default:
		return p.Easy
	}
}

// Informant is the contact the player questions in each city.
type Informant struct {
	Name              string `json:"name"`
	Greeting          string `json:"greeting"`
	FarewellHelpful   string `json:"farewellHelpful"`
	FarewellUnhelpful string `json:"farewellUnhelpful"`
}

// FinalEncounter is the three-step dialogue played out when the player
// reaches the final city: the target speaks, the companion responds, and
// the victory message closes the game.
type FinalEncounter struct {
	NadineSpeech   string `json:"nadineSpeech"`
	SteveResponse  string `json:"steveResponse"`
	VictoryMessage string `json:"victoryMessage"`
}

// City is immutable reference data describing one stop the route generator
// can pick. Exactly one city in the catalog has IsFinal set.
type City struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Country         string          `json:"country"`
	IsFinal         bool            `json:"isFinal"`
	Clues           CluePool        `json:"clues"`
	Informant       Informant       `json:"informant"`
	NotHereResponse string          `json:"notHereResponse"`
	FinalEncounter  *FinalEncounter `json:"finalEncounter,omitempty"`
}

// Route is the fixed 5-city sequence a session traverses, ending at the
// final city. Never mutated after creation; a reset regenerates it.
type Route []string

// RouteLength is the number of stops in every generated route.
const RouteLength = 5

// Clue is one presented hint, recorded in the session's collected list.
type Clue struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Difficulty Tier      `json:"difficulty"`
	SourceCity string    `json:"sourceCity"`
	AboutCity  string    `json:"aboutCity"`
	Timestamp  time.Time `json:"timestamp"`
}

// Stats are the player-visible counters for a session.
type Stats struct {
	Score             int `json:"score"`
	AttemptsRemaining int `json:"attemptsRemaining"`
	CitiesCompleted   int `json:"citiesCompleted"`
}

// DefaultAttempts is the wrong-guess allowance for a fresh session.
const DefaultAttempts = 3

// FailureDetails is populated once, on entering game_over.
type FailureDetails struct {
	FinalScore        int    `json:"finalScore"`
	CitiesReached     int    `json:"citiesReached"`
	CluesCollected    int    `json:"cluesCollected"`
	InvestigationPath string `json:"investigationPath"`
}

// Catalog is the loaded city reference data plus lookup indexes. Built once
// at startup by internal/catalog and treated as immutable afterwards.
type Catalog struct {
	Cities []City

	byID  map[string]*City
	final *City
}

// NewCatalog indexes the given cities. It does not validate them; the
// loader performs structural checks before calling this.
func NewCatalog(cities []City) *Catalog {
	c := &Catalog{
		Cities: cities,
		byID:   make(map[string]*City, len(cities)),
	}
	for i := range cities {
		c.byID[cities[i].ID] = &cities[i]
		if cities[i].IsFinal {
			c.final = &cities[i]
		}
	}
	return c
}

// City returns the city with the given id, or nil.
func (c *Catalog) City(id string) *City {
	return c.byID[id]
}

// FinalCity returns the unique final city, or nil if the catalog has none.
func (c *Catalog) FinalCity() *City {
	return c.final
}

// NonFinalCities returns every city that is not the final one, in catalog
// order.
func (c *Catalog) NonFinalCities() []City {
	out := make([]City, 0, len(c.Cities))
	for _, city := range c.Cities {
		if !city.IsFinal {
			out = append(out, city)
		}
	}
	return out
}
