package game

import (
	"errors"
	"fmt"
)

// The four error kinds callers are expected to branch on. Invariant
// violations are never repaired in place: the only recoveries are
// regenerate-from-scratch or surfacing the error.
var (
	// ErrCatalogLoad wraps failures fetching or decoding the city catalog.
	ErrCatalogLoad = errors.New("catalog load failed")

	// ErrRouteGeneration means the catalog cannot produce a valid route.
	ErrRouteGeneration = errors.New("route generation failed")

	// ErrValidation means a persisted state or generated route violates an
	// invariant and must be discarded, not patched.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAction means a gameplay action was rejected with no state
	// mutation, e.g. traveling to a visited city or guessing past the end
	// of the route.
	ErrInvalidAction = errors.New("invalid action")
)

func routeErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRouteGeneration, fmt.Sprintf(format, args...))
}

func validationErr(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, fmt.Sprintf(format, args...))
}

func invalidActionErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAction, fmt.Sprintf(format, args...))
}
