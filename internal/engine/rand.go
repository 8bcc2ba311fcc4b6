package engine

import (
	"math/rand"
	"sync"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/agent"
)

// Rand is the subset of math/rand the simulation draws from. Injected so
// tests can seed it deterministically.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// lockedRand guards a *rand.Rand so the store tick, the scheduler loop and
// API-triggered events can share one source.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand wraps a seeded source for injection into the engine.
func NewRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// intBetween returns a uniform value in [min,max] inclusive.
func intBetween(rng Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// activityWeights is the sampling table for agent activities. Working is the
// most common state on the floor.
var activityWeights = []struct {
	activity agent.Activity
	weight   float64
}{
	{agent.ActivityIdle, 0.2},
	{agent.ActivityWorking, 0.5},
	{agent.ActivityMeeting, 0.1},
	{agent.ActivityBreak, 0.1},
	{agent.ActivityHelping, 0.1},
}

// sampleActivity walks the cumulative distribution over activityWeights.
func sampleActivity(rng Rand) agent.Activity {
	r := rng.Float64()
	sum := 0.0
	for _, w := range activityWeights {
		sum += w.weight
		if r < sum {
			return w.activity
		}
	}
	return agent.ActivityWorking
}

// sampleMood picks a mood uniformly; used only for initial seeding.
func sampleMood(rng Rand) agent.Mood {
	return agent.AllMoods[rng.Intn(len(agent.AllMoods))]
}

// shuffleIDs returns a shuffled copy of ids (Fisher-Yates).
func shuffleIDs(rng Rand, ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
