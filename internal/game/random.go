package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// RandomSource abstracts the numeric generator so route and clue selection
// are deterministic under a fixed seed in tests.
type RandomSource interface {
	// Next returns a float in [0, 1).
	Next() float64
}

type seededSource struct {
	rng *rand.Rand
}

// NewSeededSource returns a RandomSource producing the same sequence for
// the same seed.
func NewSeededSource(seed int64) RandomSource {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Next() float64 {
	return s.rng.Float64()
}

// NewDefaultSource returns a RandomSource seeded from crypto/rand. If the
// system randomness source is unavailable it falls back to a fixed seed,
// which degrades fairness but never blocks game start.
func NewDefaultSource() RandomSource {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return NewSeededSource(1)
	}
	return NewSeededSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// randIndex maps a draw from rnd onto [0, n).
func randIndex(rnd RandomSource, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(rnd.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
