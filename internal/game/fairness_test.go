package game

import (
	"slices"
	"testing"
)

func TestEligibleSetBeforeHistory(t *testing.T) {
	f := NewFairnessTracker()
	all := []string{"a", "b", "c", "d"}

	got := f.EligibleSet(CategoryStartingCity, all)
	if !slices.Equal(got, all) {
		t.Errorf("expected full set with no history, got %v", got)
	}

	f.RecordSelection(CategoryStartingCity, "a")
	f.RecordSelection(CategoryStartingCity, "b")
	got = f.EligibleSet(CategoryStartingCity, all)
	if !slices.Equal(got, all) {
		t.Errorf("expected full set with short history, got %v", got)
	}
}

func TestEligibleSetExcludesRecent(t *testing.T) {
	f := NewFairnessTracker()
	all := []string{"a", "b", "c", "d", "e"}

	for _, v := range []string{"a", "b", "c"} {
		f.RecordSelection(CategoryStartingCity, v)
	}

	got := f.EligibleSet(CategoryStartingCity, all)
	want := []string{"d", "e"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEligibleSetNeverEmpty(t *testing.T) {
	f := NewFairnessTracker()
	all := []string{"a", "b", "c"}

	// Recent history covers every option; exclusion would empty the set.
	for _, v := range []string{"a", "b", "c"} {
		f.RecordSelection(CategoryStartingCity, v)
	}

	got := f.EligibleSet(CategoryStartingCity, all)
	if !slices.Equal(got, all) {
		t.Errorf("expected fallback to full set, got %v", got)
	}
}

func TestRecordSelectionTruncatesHistory(t *testing.T) {
	f := NewFairnessTracker()
	f.SetCap(CategoryStartingCity, 3)

	for _, v := range []string{"a", "b", "c", "d"} {
		f.RecordSelection(CategoryStartingCity, v)
	}

	// "a" fell out of the capped history, so it is eligible again.
	got := f.EligibleSet(CategoryStartingCity, []string{"a", "b", "c", "d"})
	want := []string{"a"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v after truncation, got %v", want, got)
	}
}

func TestIsUnderrepresented(t *testing.T) {
	f := NewFairnessTracker()

	if !f.IsUnderrepresented("clueDifficulty", "easy") {
		t.Error("expected everything underrepresented with empty history")
	}

	f.RecordSelection("clueDifficulty", "hard")
	f.RecordSelection("clueDifficulty", "hard")
	f.RecordSelection("clueDifficulty", "medium")

	if f.IsUnderrepresented("clueDifficulty", "hard") {
		t.Error("hard recorded above the mean, expected not underrepresented")
	}
	if !f.IsUnderrepresented("clueDifficulty", "medium") {
		t.Error("medium recorded below the mean, expected underrepresented")
	}
	if !f.IsUnderrepresented("clueDifficulty", "easy") {
		t.Error("easy never recorded, expected underrepresented")
	}
}
