package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/metrics"
)

// ErrEventInFlight rejects a forced trigger while an event is executing.
var ErrEventInFlight = errors.New("an office event is already in flight")

// SchedulerConfig bundles the scheduler's timing knobs. The defaults mirror
// the pacing of the office floor; tests shrink them to milliseconds.
type SchedulerConfig struct {
	MinDelay time.Duration // lower bound of the jittered trigger interval
	MaxDelay time.Duration // upper bound of the jittered trigger interval

	Travel         time.Duration // walk duration per leg
	BubbleDuration time.Duration // speech bubble dwell
	IconDuration   time.Duration // break icon rise-and-fade
	SettleHold     time.Duration // pause before everyone walks home

	NewsfeedMinDelay time.Duration // lower bound between ambient newsflashes
	NewsfeedMaxDelay time.Duration // upper bound between ambient newsflashes
}

// DefaultSchedulerConfig returns the production pacing.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		MinDelay:         60 * time.Second,
		MaxDelay:         120 * time.Second,
		Travel:           TravelDuration,
		BubbleDuration:   3 * time.Second,
		IconDuration:     3 * time.Second,
		SettleHold:       4 * time.Second,
		NewsfeedMinDelay: 90 * time.Second,
		NewsfeedMaxDelay: 180 * time.Second,
	}
}

// Presenter is the presentation surface the scheduler pushes transient text
// into: the shared notification banner and per-agent speech bubbles.
type Presenter interface {
	Notify(text string)
	Bubble(agentID, text string, duration time.Duration)
}

// Scheduler periodically generates one of the four scripted ambient events
// and orchestrates it: notify, walk participants out, bubble, hold, walk
// them home. At most one event is in flight at a time; a trigger landing
// while busy is dropped, never queued.
type Scheduler struct {
	movers    map[string]*Mover
	presenter Presenter
	animator  Animator
	eventLog  *events.Log
	logger    *logger.Logger
	rng       Rand
	cfg       SchedulerConfig

	mu     sync.Mutex
	active bool

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewScheduler wires the scheduler to the movement controllers and the
// presentation surface.
func NewScheduler(movers map[string]*Mover, presenter Presenter, animator Animator, eventLog *events.Log, log *logger.Logger, rng Rand, cfg SchedulerConfig) *Scheduler {
	return &Scheduler{
		movers:    movers,
		presenter: presenter,
		animator:  animator,
		eventLog:  eventLog,
		logger:    log,
		rng:       rng,
		cfg:       cfg,
		stopChan:  make(chan struct{}),
	}
}

// Start runs the jittered trigger loop. Call in a goroutine; a new delay in
// [MinDelay,MaxDelay] is drawn only after the previous event has fully
// completed. Returns when the context is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Ambient event scheduler started (every %v-%v)", s.cfg.MinDelay, s.cfg.MaxDelay)

	for {
		timer := time.NewTimer(s.randomDelay(s.cfg.MinDelay, s.cfg.MaxDelay))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Event scheduler stopped by context.")
			return
		case <-s.stopChan:
			timer.Stop()
			s.logger.Info("Event scheduler stopped.")
			return
		case <-timer.C:
			kind := eventKinds[s.rng.Intn(len(eventKinds))]
			if err := s.TriggerEvent(ctx, kind); err != nil {
				// Busy tick: drop it, the loop re-arms.
				s.logger.Warn("Skipped %s event: %v", kind, err)
			}
		}
	}
}

// RunNewsfeed emits a random flavor notification on its own jittered
// interval. Call in a goroutine.
func (s *Scheduler) RunNewsfeed(ctx context.Context, pick func(func(int) int) string) {
	for {
		timer := time.NewTimer(s.randomDelay(s.cfg.NewsfeedMinDelay, s.cfg.NewsfeedMaxDelay))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.presenter.Notify(pick(s.rng.Intn))
		}
	}
}

// Stop cancels pending triggers. An event already in flight runs to
// completion. Idempotent.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// InFlight reports whether an event is currently executing.
func (s *Scheduler) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// TriggerEvent generates and executes one event of the given kind,
// blocking until the full sequence has played out. Returns
// ErrEventInFlight if another event is still executing.
func (s *Scheduler) TriggerEvent(ctx context.Context, kind EventKind) error {
	if !s.tryAcquire() {
		metrics.Get().RecordEventSkipped()
		return ErrEventInFlight
	}
	defer s.release()

	ev := generateEvent(kind, s.rng)
	if ev == nil {
		return nil
	}

	metrics.Get().RecordEventTriggered()
	start := time.Now()
	s.execute(ctx, ev)
	metrics.Get().RecordEventCompleted(time.Since(start))
	return nil
}

func (s *Scheduler) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return false
	}
	s.active = true
	return true
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// execute runs the six strictly ordered phases of one ambient event.
func (s *Scheduler) execute(ctx context.Context, ev *AmbientEvent) {
	s.eventLog.Append(events.OfficeEvent{
		Type:    events.EventTypeOfficeEventStarted,
		Payload: ev,
	})
	s.logger.Event("OFFICE_EVENT", ev.Participants[0], "Started "+string(ev.Kind)+" event")

	// Phase 1: banner notification, non-blocking.
	s.presenter.Notify(ev.Notification)

	// Phase 2: walk every eligible participant out, then join. Agents
	// already mid-move are simply left out.
	var outbound []*Move
	if ev.Location != nil {
		for i, id := range ev.Participants {
			if ev.nonMover(i) {
				continue
			}
			mover, ok := s.movers[id]
			if !ok || mover.IsMoving() {
				continue
			}
			mv, err := mover.MoveTo(*ev.Location, s.cfg.Travel)
			if err != nil {
				continue
			}
			outbound = append(outbound, mv)
		}
	}
	waitAll(ctx, outbound)

	// Phase 3: speech bubbles for everyone involved.
	if ev.BubbleText != "" {
		for _, id := range ev.Participants {
			s.presenter.Bubble(id, ev.BubbleText, s.cfg.BubbleDuration)
		}
	}

	// Phase 4: the coffee icon, break events only.
	if ev.Kind == EventBreak && ev.Location != nil {
		s.animator.PlayTransientVisual("coffee", *ev.Location, s.cfg.IconDuration)
	}

	// Phase 5: let the scene settle.
	sleepCtx(ctx, s.cfg.SettleHold)

	// Phase 6: everyone not mid-move walks back home, then join.
	var returns []*Move
	for _, id := range ev.Participants {
		mover, ok := s.movers[id]
		if !ok || mover.IsMoving() {
			continue
		}
		mv, err := mover.MoveTo(mover.Home(), s.cfg.Travel)
		if err != nil {
			continue
		}
		returns = append(returns, mv)
	}
	waitAll(ctx, returns)

	s.eventLog.Append(events.OfficeEvent{
		Type:    events.EventTypeOfficeEventCompleted,
		Payload: ev,
	})
}

func (s *Scheduler) randomDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(s.rng.Intn(int(max-min)+1))
}

// waitAll joins on every issued move. A rejected or slow move never blocks
// the others; execution proceeds once all issued handles have settled.
func waitAll(ctx context.Context, moves []*Move) {
	for _, mv := range moves {
		select {
		case <-mv.Done():
		case <-ctx.Done():
			return
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
