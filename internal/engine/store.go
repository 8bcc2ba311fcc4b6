package engine

import (
	"context"
	"sync"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/agent"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/metrics"
)

// StateTickInterval is the default wall-clock period between state sweeps.
const StateTickInterval = 30 * time.Second

// refreshChance is the per-agent probability of resampling on each sweep.
const refreshChance = 0.3

// StateStore maintains independent, periodically refreshed mood, activity
// and energy state for every agent on the roster. Unknown ids are silently
// ignored by setters and report absent from getters; the store never errors.
type StateStore struct {
	eventLog *events.Log
	logger   *logger.Logger
	rng      Rand
	interval time.Duration

	mu     sync.RWMutex
	states map[string]*agent.State

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewStateStore seeds state for every id: random mood, weighted-random
// activity, energy in [60,100], task count in [0,4].
func NewStateStore(eventLog *events.Log, log *logger.Logger, rng Rand, interval time.Duration, ids []string) *StateStore {
	if interval <= 0 {
		interval = StateTickInterval
	}
	s := &StateStore{
		eventLog: eventLog,
		logger:   log,
		rng:      rng,
		interval: interval,
		states:   make(map[string]*agent.State, len(ids)),
		stopChan: make(chan struct{}),
	}

	now := time.Now()
	for _, id := range ids {
		s.states[id] = &agent.State{
			ID:         id,
			Mood:       sampleMood(rng),
			Activity:   sampleActivity(rng),
			Energy:     intBetween(rng, 60, 100),
			TaskCount:  rng.Intn(5),
			LastActive: now,
		}
	}
	return s
}

// Start runs the periodic state sweep. Call in a goroutine; returns when the
// context is cancelled or Destroy is called.
func (s *StateStore) Start(ctx context.Context) {
	s.logger.Info("State store started, sweeping every %v", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("State store stopped by context.")
			return
		case <-s.stopChan:
			s.logger.Info("State store stopped.")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick performs one sweep: each agent resamples its activity with
// probability 0.3 and recomputes mood and energy from the new activity.
func (s *StateStore) Tick() {
	start := time.Now()

	s.mu.Lock()
	var changed []agent.State
	for _, st := range s.states {
		if s.rng.Float64() < refreshChance {
			updateState(st, s.rng, time.Now())
			changed = append(changed, *st)
		}
	}
	s.mu.Unlock()

	for _, snap := range changed {
		s.emitState(snap)
		metrics.Get().RecordStateChange()
	}
	metrics.Get().RecordTick(time.Since(start))
}

// updateState applies one refresh to a single agent state. The mood is a
// function of the newly sampled activity and the current energy band.
func updateState(st *agent.State, rng Rand, now time.Time) {
	oldActivity := st.Activity
	st.Activity = sampleActivity(rng)

	switch st.Activity {
	case agent.ActivityBreak:
		st.Mood = agent.MoodHappy
		st.Energy = agent.ClampEnergy(st.Energy + 10)
	case agent.ActivityWorking:
		switch {
		case st.Energy > 70:
			if rng.Float64() > 0.5 {
				st.Mood = agent.MoodFocused
			} else {
				st.Mood = agent.MoodHappy
			}
		case st.Energy > 30:
			st.Mood = agent.MoodFocused
		default:
			if rng.Float64() > 0.5 {
				st.Mood = agent.MoodTired
			} else {
				st.Mood = agent.MoodStressed
			}
		}
		st.Energy = agent.ClampEnergy(st.Energy - 5)
	case agent.ActivityMeeting:
		if st.Energy > 50 {
			st.Mood = agent.MoodFocused
		} else {
			st.Mood = agent.MoodTired
		}
		st.Energy = agent.ClampEnergy(st.Energy - 3)
	case agent.ActivityHelping:
		st.Mood = agent.MoodExcited
		st.Energy = agent.ClampEnergy(st.Energy - 8)
	default: // idle
		if st.Energy > 60 {
			st.Mood = agent.MoodHappy
		} else {
			st.Mood = agent.MoodTired
		}
		st.Energy = agent.ClampEnergy(st.Energy + 5)
	}

	if st.Activity == agent.ActivityWorking {
		delta := -1
		if rng.Float64() > 0.5 {
			delta = 1
		}
		if st.TaskCount+delta >= 0 {
			st.TaskCount += delta
		}
	}
	if oldActivity == agent.ActivityWorking && st.Activity != agent.ActivityWorking {
		if st.TaskCount > 0 {
			st.TaskCount--
		}
	}

	st.LastActive = now
}

// GetState returns a snapshot of one agent's state. The second return is
// false for unknown ids.
func (s *StateStore) GetState(id string) (agent.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[id]
	if !ok {
		return agent.State{}, false
	}
	return *st, true
}

// AllStates returns snapshots for every agent, keyed by id.
func (s *StateStore) AllStates() map[string]agent.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]agent.State, len(s.states))
	for id, st := range s.states {
		out[id] = *st
	}
	return out
}

// SetMood overrides one agent's mood for scripted moments.
func (s *StateStore) SetMood(id string, mood agent.Mood) {
	s.mutate(id, func(st *agent.State) {
		st.Mood = mood
	})
}

// SetActivity overrides one agent's activity for scripted moments.
func (s *StateStore) SetActivity(id string, activity agent.Activity) {
	s.mutate(id, func(st *agent.State) {
		st.Activity = activity
	})
}

// AdjustEnergy shifts one agent's energy by delta, clamped to [0,100].
func (s *StateStore) AdjustEnergy(id string, delta int) {
	s.mutate(id, func(st *agent.State) {
		st.Energy = agent.ClampEnergy(st.Energy + delta)
	})
}

func (s *StateStore) mutate(id string, fn func(*agent.State)) {
	s.mu.Lock()
	st, ok := s.states[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	fn(st)
	st.LastActive = time.Now()
	snap := *st
	s.mu.Unlock()

	s.emitState(snap)
}

func (s *StateStore) emitState(snap agent.State) {
	if s.eventLog == nil {
		return
	}
	s.eventLog.Append(events.OfficeEvent{
		Type:    events.EventTypeAgentState,
		AgentID: snap.ID,
		Payload: snap,
	})
}

// Destroy cancels the periodic sweep. Idempotent.
func (s *StateStore) Destroy() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}
