package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/agent"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/grid"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
)

// fakeAnimator sleeps for the requested duration and records every call.
// When block is set, moves hang until it closes instead of sleeping.
type fakeAnimator struct {
	block chan struct{}

	mu      sync.Mutex
	moves   []recordedMove
	visuals []string
	texts   []string
}

type recordedMove struct {
	agentID string
	to      grid.Position
}

func (a *fakeAnimator) AnimatePosition(ctx context.Context, agentID string, from, to grid.Position, duration time.Duration) error {
	a.mu.Lock()
	a.moves = append(a.moves, recordedMove{agentID: agentID, to: to})
	block := a.block
	a.mu.Unlock()

	if block != nil {
		select {
		case <-block:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *fakeAnimator) PlayTransientVisual(kind string, at grid.Position, duration time.Duration) {
	a.mu.Lock()
	a.visuals = append(a.visuals, kind)
	a.mu.Unlock()
}

func (a *fakeAnimator) ShowFloatingText(text string, at grid.Position, duration time.Duration) {
	a.mu.Lock()
	a.texts = append(a.texts, text)
	a.mu.Unlock()
}

func (a *fakeAnimator) recordedMoves() []recordedMove {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]recordedMove, len(a.moves))
	copy(out, a.moves)
	return out
}

func testProfile() agent.Profile {
	return agent.Profile{ID: "coder", Name: "Coder", Home: grid.Position{X: 17, Y: 8}}
}

func TestMoveArrivalUpdatesPosition(t *testing.T) {
	m := NewMover(testProfile(), &fakeAnimator{}, logger.NewLogger())

	target := grid.Position{X: 5, Y: 5}
	mv, err := m.MoveTo(target, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Expected move to start, got %v", err)
	}
	if !m.IsMoving() {
		t.Errorf("Expected IsMoving during flight")
	}

	if err := mv.Wait(context.Background()); err != nil {
		t.Fatalf("Expected arrival, got %v", err)
	}
	if m.Position() != target {
		t.Errorf("Expected position %v after arrival, got %v", target, m.Position())
	}
	if m.IsMoving() {
		t.Errorf("Expected IsMoving false after arrival")
	}
}

func TestSecondMoveRejected(t *testing.T) {
	m := NewMover(testProfile(), &fakeAnimator{}, logger.NewLogger())

	first, err := m.MoveTo(grid.Position{X: 1, Y: 1}, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("Expected first move to start, got %v", err)
	}

	if _, err := m.MoveTo(grid.Position{X: 2, Y: 2}, 10*time.Millisecond); !errors.Is(err, ErrAlreadyMoving) {
		t.Errorf("Expected ErrAlreadyMoving, got %v", err)
	}

	// The original move is unaffected by the rejection.
	if err := first.Wait(context.Background()); err != nil {
		t.Errorf("Expected first move to complete, got %v", err)
	}
	if got := (grid.Position{X: 1, Y: 1}); m.Position() != got {
		t.Errorf("Expected position %v, got %v", got, m.Position())
	}
}

func TestStopPreventsCompletion(t *testing.T) {
	m := NewMover(testProfile(), &fakeAnimator{}, logger.NewLogger())
	home := m.Home()

	mv, err := m.MoveTo(grid.Position{X: 1, Y: 1}, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("Expected move to start, got %v", err)
	}

	m.Stop()
	if m.IsMoving() {
		t.Errorf("Expected IsMoving false immediately after Stop")
	}

	if err := mv.Wait(context.Background()); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped, got %v", err)
	}
	if m.Position() != home {
		t.Errorf("Expected position to stay %v after stop, got %v", home, m.Position())
	}

	// A stopped mover accepts a fresh move.
	mv2, err := m.MoveTo(grid.Position{X: 3, Y: 3}, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Expected fresh move after stop, got %v", err)
	}
	if err := mv2.Wait(context.Background()); err != nil {
		t.Errorf("Expected fresh move to arrive, got %v", err)
	}
}

func TestStopIdempotent(t *testing.T) {
	m := NewMover(testProfile(), &fakeAnimator{}, logger.NewLogger())

	m.Stop()
	m.Stop()

	mv, err := m.MoveTo(grid.Position{X: 2, Y: 2}, 150*time.Millisecond)
	if err != nil {
		t.Fatalf("Expected move to start, got %v", err)
	}
	m.Stop()
	m.Stop()
	if err := mv.Wait(context.Background()); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped after double stop, got %v", err)
	}
}
