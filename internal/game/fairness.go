package game

// Fairness categories tracked per session core. Starting-city history spans
// sessions within a process; clue histories are per-session.
const (
	CategoryStartingCity = "startingCity"
	categoryCluePrefix   = "clue:"
)

// recentWindow is how many of the newest recordings are excluded from the
// eligible set once enough history exists.
const recentWindow = 3

// Default history caps per category.
const (
	startingCityHistoryCap = 5
	clueHistoryCap         = 9
)

// FairnessTracker biases random selection away from recently-chosen options
// without eliminating randomness. It keeps a bounded recent-selection log
// per category key. No persistence: history lives for the lifetime of the
// tracker instance only.
type FairnessTracker struct {
	history map[string][]string
	caps    map[string]int
}

// NewFairnessTracker returns an empty tracker with default history caps.
func NewFairnessTracker() *FairnessTracker {
	return &FairnessTracker{
		history: make(map[string][]string),
		caps:    make(map[string]int),
	}
}

// ClueCategory returns the fairness category key for one clue tier.
func ClueCategory(t Tier) string {
	return categoryCluePrefix + string(t)
}

func (f *FairnessTracker) cap(category string) int {
	if c, ok := f.caps[category]; ok {
		return c
	}
	if category == CategoryStartingCity {
		return startingCityHistoryCap
	}
	return clueHistoryCap
}

// SetCap overrides the history cap for a category.
func (f *FairnessTracker) SetCap(category string, n int) {
	if n > 0 {
		f.caps[category] = n
	}
}

// RecordSelection appends value to the category's history, truncating the
// oldest entries beyond the cap.
func (f *FairnessTracker) RecordSelection(category, value string) {
	h := append(f.history[category], value)
	if c := f.cap(category); len(h) > c {
		h = h[len(h)-c:]
	}
	f.history[category] = h
}

// EligibleSet returns all options unless the category has at least three
// recordings, in which case options present in the last three recordings
// are excluded. If exclusion would empty the set, the full set is
// returned instead. Zero eligible options is never allowed.
func (f *FairnessTracker) EligibleSet(category string, all []string) []string {
	h := f.history[category]
	if len(h) < recentWindow {
		return all
	}

	recent := make(map[string]bool, recentWindow)
	for _, v := range h[len(h)-recentWindow:] {
		recent[v] = true
	}

	eligible := make([]string, 0, len(all))
	for _, opt := range all {
		if !recent[opt] {
			eligible = append(eligible, opt)
		}
	}
	if len(eligible) == 0 {
		return all
	}
	return eligible
}

// IsUnderrepresented reports whether value has been recorded fewer times
// than the mean count across the category's history. Used to softly prefer
// rarer clue difficulties.
func (f *FairnessTracker) IsUnderrepresented(category, value string) bool {
	h := f.history[category]
	if len(h) == 0 {
		return true
	}

	counts := make(map[string]int)
	for _, v := range h {
		counts[v]++
	}
	mean := float64(len(h)) / float64(len(counts))
	return float64(counts[value]) < mean
}
