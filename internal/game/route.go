package game

// routeRetries bounds regeneration after a post-hoc validation failure.
// Guards against pathological fairness-history states starving selection.
const routeRetries = 3

// minCountryDiversity is the soft floor of distinct countries among the
// four non-final stops. Falling below it records a warning, never an error.
const minCountryDiversity = 3

// GenerateRoute builds the 5-city journey: four non-final cities drawn
// without replacement using fairness-biased selection, then the unique
// final city. Each selected city is recorded into the tracker under the
// starting-city category. Returned warnings note soft-property violations
// (geographic diversity); they never block generation.
func GenerateRoute(cat *Catalog, tracker *FairnessTracker, rnd RandomSource) (Route, []string, error) {
	final := cat.FinalCity()
	if final == nil {
		return nil, nil, routeErr("catalog has no final city")
	}
	nonFinal := cat.NonFinalCities()
	if len(nonFinal) < RouteLength-1 {
		return nil, nil, routeErr("catalog has %d non-final cities, need %d", len(nonFinal), RouteLength-1)
	}

	var lastErr error
	for attempt := 0; attempt < routeRetries; attempt++ {
		route := drawRoute(nonFinal, final, tracker, rnd)
		if err := ValidateRoute(route, cat); err != nil {
			lastErr = err
			continue
		}

		for _, id := range route[:RouteLength-1] {
			tracker.RecordSelection(CategoryStartingCity, id)
		}

		var warnings []string
		if n := countryCount(route[:RouteLength-1], cat); n < minCountryDiversity {
			warnings = append(warnings, "route spans fewer than 3 distinct countries")
		}
		return route, warnings, nil
	}
	return nil, nil, routeErr("no valid route after %d attempts: %v", routeRetries, lastErr)
}

func drawRoute(nonFinal []City, final *City, tracker *FairnessTracker, rnd RandomSource) Route {
	remaining := make([]string, len(nonFinal))
	for i, c := range nonFinal {
		remaining[i] = c.ID
	}

	route := make(Route, 0, RouteLength)
	for len(route) < RouteLength-1 {
		eligible := tracker.EligibleSet(CategoryStartingCity, remaining)
		pick := eligible[randIndex(rnd, len(eligible))]
		route = append(route, pick)

		for i, id := range remaining {
			if id == pick {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return append(route, final.ID)
}

// ValidateRoute checks the structural invariants of a generated or restored
// route: exactly 5 stops, no duplicates, all ids resolve against the
// catalog, the last stop is the unique final city, and none of the first
// four stops is final.
func ValidateRoute(route Route, cat *Catalog) error {
	if len(route) != RouteLength {
		return validationErr("route", "has %d stops, want %d", len(route), RouteLength)
	}

	seen := make(map[string]bool, RouteLength)
	for i, id := range route {
		if seen[id] {
			return validationErr("route", "duplicate city %q", id)
		}
		seen[id] = true

		city := cat.City(id)
		if city == nil {
			return validationErr("route", "unknown city %q", id)
		}
		if i == RouteLength-1 && !city.IsFinal {
			return validationErr("route", "last stop %q is not the final city", id)
		}
		if i < RouteLength-1 && city.IsFinal {
			return validationErr("route", "final city %q at position %d", id, i)
		}
	}
	return nil
}

func countryCount(ids []string, cat *Catalog) int {
	countries := make(map[string]bool)
	for _, id := range ids {
		if c := cat.City(id); c != nil {
			countries[c.Country] = true
		}
	}
	return len(countries)
}
