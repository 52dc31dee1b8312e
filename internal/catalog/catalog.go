// Package catalog provides the immutable city reference data the game core
// runs on. The shipped catalog is embedded; a Provider can swap in another
// source. Loading happens once, fully, before the server accepts any
// gameplay action.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/stadtaev/citychase/internal/game"
)

//go:embed cities.json
var citiesJSON []byte

// DefaultTimeout bounds a catalog load. Loads must fail into a defined
// error state rather than hang.
const DefaultTimeout = 5 * time.Second

// Provider supplies the full city list in a single fetch.
type Provider func(ctx context.Context) ([]game.City, error)

// Embedded returns the provider backed by the compiled-in catalog.
func Embedded() Provider {
	return func(_ context.Context) ([]game.City, error) {
		var cities []game.City
		if err := json.Unmarshal(citiesJSON, &cities); err != nil {
			return nil, fmt.Errorf("decoding embedded catalog: %w", err)
		}
		return cities, nil
	}
}

// Load fetches cities through the provider under the given timeout, runs
// structural checks, and returns the indexed catalog. Load errors wrap
// game.ErrCatalogLoad; the caller may retry but the core never falls back
// to a partial catalog.
func Load(ctx context.Context, provider Provider, timeout time.Duration, logger *slog.Logger) (*game.Catalog, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		cities []game.City
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		cities, err := provider(ctx)
		ch <- result{cities, err}
	}()

	var cities []game.City
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", game.ErrCatalogLoad, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %v", game.ErrCatalogLoad, res.err)
		}
		cities = res.cities
	}

	if err := check(cities, logger); err != nil {
		return nil, err
	}
	return game.NewCatalog(cities), nil
}

// check enforces the structural minimums a playable catalog needs. Thin
// clue pools are only warned about; missing or duplicate final cities are
// fatal.
func check(cities []game.City, logger *slog.Logger) error {
	if len(cities) < game.RouteLength {
		return fmt.Errorf("%w: catalog has %d cities, need at least %d", game.ErrCatalogLoad, len(cities), game.RouteLength)
	}

	seen := make(map[string]bool, len(cities))
	finals := 0
	for _, c := range cities {
		if c.ID == "" {
			return fmt.Errorf("%w: city %q has no id", game.ErrCatalogLoad, c.Name)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate city id %q", game.ErrCatalogLoad, c.ID)
		}
		seen[c.ID] = true

		if c.IsFinal {
			finals++
			if c.FinalEncounter == nil {
				return fmt.Errorf("%w: final city %q has no encounter", game.ErrCatalogLoad, c.ID)
			}
		}

		if len(c.Clues.Easy) == 0 || len(c.Clues.Medium) == 0 || len(c.Clues.Difficult) == 0 {
			logger.Warn("city has an empty clue tier", "city", c.ID)
		}
	}
	if finals != 1 {
		return fmt.Errorf("%w: catalog has %d final cities, need exactly 1", game.ErrCatalogLoad, finals)
	}
	return nil
}
