package rabbit

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/run-rabbit/internal/config"
)

// Rand supplies bounded pseudo-random integers for spawn and recycle positions.
// *rand.Rand satisfies it; tests pass scripted sequences.
type Rand interface {
	// Intn returns a value in [0, n). n is always positive.
	Intn(n int) int
}

// NewRand returns a seeded source. Seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// sample draws a jitter offset of rand(Steps) * Unit.
func sample(rng Rand, j config.Jitter) float64 {
	if j.Steps <= 0 {
		return 0
	}
	return float64(rng.Intn(j.Steps)) * j.Unit
}

// between draws an integer in [lo, hi].
func between(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
