package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/agent"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
)

// fakePresenter records notifications and bubbles.
type fakePresenter struct {
	mu            sync.Mutex
	notifications []string
	bubbles       map[string][]string
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{bubbles: make(map[string][]string)}
}

func (p *fakePresenter) Notify(text string) {
	p.mu.Lock()
	p.notifications = append(p.notifications, text)
	p.mu.Unlock()
}

func (p *fakePresenter) Bubble(agentID, text string, duration time.Duration) {
	p.mu.Lock()
	p.bubbles[agentID] = append(p.bubbles[agentID], text)
	p.mu.Unlock()
}

func testConfig() SchedulerConfig {
	return SchedulerConfig{
		MinDelay:         time.Hour,
		MaxDelay:         time.Hour,
		Travel:           5 * time.Millisecond,
		BubbleDuration:   time.Millisecond,
		IconDuration:     time.Millisecond,
		SettleHold:       time.Millisecond,
		NewsfeedMinDelay: time.Hour,
		NewsfeedMaxDelay: time.Hour,
	}
}

func buildScheduler(rng Rand) (*Scheduler, map[string]*Mover, *fakePresenter, *fakeAnimator) {
	log := logger.NewLogger()
	el := events.NewLog(nil)
	animator := &fakeAnimator{}
	presenter := newFakePresenter()

	movers := make(map[string]*Mover, len(agent.Roster))
	for _, p := range agent.Roster {
		movers[p.ID] = NewMover(p, animator, log)
	}

	s := NewScheduler(movers, presenter, animator, el, log, rng, testConfig())
	return s, movers, presenter, animator
}

func TestBreakEventRoundTrip(t *testing.T) {
	// Draw 0 everywhere: taker is the first listed break taker, cup #1.
	rng := &scriptRand{floats: []float64{0}, ints: []int{0}}
	s, movers, presenter, animator := buildScheduler(rng)

	if err := s.TriggerEvent(context.Background(), EventBreak); err != nil {
		t.Fatalf("Expected break event to run, got %v", err)
	}

	taker := breakTakers[0]
	home := agent.Lookup(taker).Home

	if movers[taker].Position() != home {
		t.Errorf("Expected %s back home at %v, got %v", taker, home, movers[taker].Position())
	}

	moves := animator.recordedMoves()
	if len(moves) != 2 {
		t.Fatalf("Expected 2 legs (out and back), got %d", len(moves))
	}
	if moves[0].to != agent.LocationKitchen {
		t.Errorf("Expected outbound leg to the kitchen %v, got %v", agent.LocationKitchen, moves[0].to)
	}
	if moves[1].to != home {
		t.Errorf("Expected return leg to %v, got %v", home, moves[1].to)
	}

	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	if len(presenter.notifications) != 1 || !strings.Contains(presenter.notifications[0], "coffee cup #1") {
		t.Errorf("Expected a cup #1 notification, got %v", presenter.notifications)
	}
	if len(presenter.notifications) == 1 && !strings.Contains(presenter.notifications[0], agent.DisplayName(taker)) {
		t.Errorf("Expected notification to name %s, got %q", agent.DisplayName(taker), presenter.notifications[0])
	}
	if got := presenter.bubbles[taker]; len(got) != 1 || got[0] != "☕" {
		t.Errorf("Expected a coffee bubble for %s, got %v", taker, got)
	}

	animator.mu.Lock()
	defer animator.mu.Unlock()
	if len(animator.visuals) != 1 || animator.visuals[0] != "coffee" {
		t.Errorf("Expected one coffee visual, got %v", animator.visuals)
	}
}

func TestCollaborationTargetStaysPut(t *testing.T) {
	rng := &scriptRand{floats: []float64{0}, ints: []int{0}}
	s, movers, presenter, animator := buildScheduler(rng)

	if err := s.TriggerEvent(context.Background(), EventCollaboration); err != nil {
		t.Fatalf("Expected collaboration event to run, got %v", err)
	}

	visitor := collabPairs[0].from
	host := collabPairs[0].to
	hostHome := agent.Lookup(host).Home

	// The host never walks anywhere but home.
	for _, mv := range animator.recordedMoves() {
		if mv.agentID == host && mv.to != hostHome {
			t.Errorf("Expected host %s to only ever target home, got move to %v", host, mv.to)
		}
	}

	if movers[visitor].Position() != agent.Lookup(visitor).Home {
		t.Errorf("Expected visitor %s back home, got %v", visitor, movers[visitor].Position())
	}
	if movers[host].Position() != hostHome {
		t.Errorf("Expected host %s at home, got %v", host, movers[host].Position())
	}

	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	if len(presenter.bubbles[visitor]) != 1 || len(presenter.bubbles[host]) != 1 {
		t.Errorf("Expected one bubble each for visitor and host, got %v", presenter.bubbles)
	}
}

func TestMeetingGathersInConferenceRoom(t *testing.T) {
	rng := NewRand(3)
	s, movers, presenter, animator := buildScheduler(rng)

	if err := s.TriggerEvent(context.Background(), EventMeeting); err != nil {
		t.Fatalf("Expected meeting event to run, got %v", err)
	}

	outbound := 0
	for _, mv := range animator.recordedMoves() {
		if mv.to == agent.LocationConference {
			outbound++
		}
	}
	if outbound < 2 || outbound > 4 {
		t.Errorf("Expected 2 to 4 agents walking to the conference room, got %d", outbound)
	}

	for id, m := range movers {
		if m.Position() != agent.Lookup(id).Home {
			t.Errorf("Expected %s back home after the meeting, got %v", id, m.Position())
		}
	}

	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	if len(presenter.notifications) != 1 {
		t.Fatalf("Expected one meeting notification, got %v", presenter.notifications)
	}
}

func TestTriggerWhileInFlight(t *testing.T) {
	rng := &scriptRand{floats: []float64{0}, ints: []int{0}}
	s, _, _, animator := buildScheduler(rng)

	// Hold the outbound walk open so the first event stays in flight.
	animator.block = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- s.TriggerEvent(context.Background(), EventBreak)
	}()

	// Wait until the first event has issued its outbound move.
	deadline := time.After(time.Second)
	for len(animator.recordedMoves()) == 0 {
		select {
		case <-deadline:
			t.Fatalf("First event never started its outbound move")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := s.TriggerEvent(context.Background(), EventHelp); !errors.Is(err, ErrEventInFlight) {
		t.Errorf("Expected ErrEventInFlight while busy, got %v", err)
	}

	close(animator.block)
	if err := <-done; err != nil {
		t.Errorf("Expected first event to complete, got %v", err)
	}
}

func TestSchedulerStopIdempotent(t *testing.T) {
	rng := NewRand(1)
	s, _, _, _ := buildScheduler(rng)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	finished := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(finished)
	}()

	s.Stop()
	s.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatalf("Expected Start to return after Stop")
	}
}
