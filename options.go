package cubie

import (
	"math/rand/v2"
	"time"

	"github.com/SeamusWaldron/cubie/internal/stabilizer"
)

// Option configures Machine behavior.
type Option func(*config)

type config struct {
	stabilize time.Duration
	clock     stabilizer.Clock
	intn      func(n int) int
}

func defaultConfig() *config {
	return &config{
		stabilize: stabilizer.DefaultDuration,
		clock:     time.Now,
		intn:      rand.IntN,
	}
}

// WithStabilizeDuration sets the baseline snap duration.
// Undo playback uses half of it; queued moves get shorter snaps.
func WithStabilizeDuration(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.stabilize = d
		}
	}
}

// WithClock sets the time source used by every snap animation.
// Tests use it to step animations deterministically.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRand sets the random source used by Shuffle.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.intn = r.IntN
		}
	}
}
