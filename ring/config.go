package ring

import (
	"math/rand"
	"sync"
	"time"

	"github.com/edup2p/hygienic/ring/actors"
)

// Config tunes a ring's simulated workload. The zero value is usable: peers
// think and eat for short randomized stretches.
type Config struct {
	// ThinkFor and EatFor return the simulated length of one Thinking or
	// Eating stretch. Nil falls back to seeded uniform defaults.
	ThinkFor func() time.Duration
	EatFor   func() time.Duration

	// InboxLen overrides each peer's inbox buffer.
	InboxLen int

	// Seed drives the default duration functions. Scheduler fairness is a
	// configuration parameter of this model, not an assumption: how fairly
	// peers interleave follows from these durations and the host scheduler,
	// and the protocol must stay correct under any of it.
	Seed int64
}

func (c Config) actorConfig() actors.Config {
	ac := actors.Config{
		ThinkFor: c.ThinkFor,
		EatFor:   c.EatFor,
		InboxLen: c.InboxLen,
	}

	if ac.ThinkFor == nil {
		ac.ThinkFor = UniformDurations(actors.DefaultThinkMin, actors.DefaultThinkMax, c.Seed)
	}
	if ac.EatFor == nil {
		ac.EatFor = UniformDurations(actors.DefaultEatMin, actors.DefaultEatMax, c.Seed+1)
	}
	if ac.InboxLen == 0 {
		ac.InboxLen = actors.PeerInboxChLen
	}

	return ac
}

// UniformDurations returns a duration source drawing uniformly from
// [min, max), safe for use from every peer at once.
func UniformDurations(min, max time.Duration, seed int64) func() time.Duration {
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))

	span := int64(max - min)
	if span <= 0 {
		return func() time.Duration { return min }
	}

	return func() time.Duration {
		mu.Lock()
		defer mu.Unlock()

		return min + time.Duration(rng.Int63n(span))
	}
}

// FixedDuration returns a duration source that always answers d.
func FixedDuration(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}
