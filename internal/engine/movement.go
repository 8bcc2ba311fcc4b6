package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/agent"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/grid"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
)

// TravelDuration is the default time an agent spends walking to a target.
const TravelDuration = 2 * time.Second

var (
	// ErrAlreadyMoving rejects a MoveTo issued while a move is in flight.
	// Callers treat it as "skip this agent", never as a fault.
	ErrAlreadyMoving = errors.New("agent is already moving")

	// ErrStopped settles a move that was cancelled before arrival.
	ErrStopped = errors.New("move stopped before completion")
)

// Animator is the rendering collaborator the engine drives. It owns the
// visual interpolation (including any cosmetic walk bob); AnimatePosition
// returns nil on true completion and a non-nil error when the context is
// cancelled mid-flight.
type Animator interface {
	AnimatePosition(ctx context.Context, agentID string, from, to grid.Position, duration time.Duration) error
	PlayTransientVisual(kind string, at grid.Position, duration time.Duration)
	ShowFloatingText(text string, at grid.Position, duration time.Duration)
}

// Move is the handle for one in-flight relocation. Done closes when the
// move settles; Err then reports nil for arrival or ErrStopped for
// cancellation. The logical position is only updated on arrival.
type Move struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newMove() *Move {
	return &Move{done: make(chan struct{})}
}

// Done returns a channel closed once the move has settled.
func (m *Move) Done() <-chan struct{} {
	return m.done
}

// Err reports the outcome. Only valid after Done is closed.
func (m *Move) Err() error {
	return m.err
}

// Wait blocks until the move settles or the context is cancelled.
func (m *Move) Wait(ctx context.Context) error {
	select {
	case <-m.done:
		return m.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Move) settle(err error) {
	m.once.Do(func() {
		m.err = err
		close(m.done)
	})
}

// Mover drives a single agent's position between grid tiles with mutual
// exclusion: at most one move in flight per agent.
type Mover struct {
	profile  agent.Profile
	animator Animator
	logger   *logger.Logger

	mu      sync.Mutex
	pos     grid.Position
	moving  bool
	current *Move
	cancel  context.CancelFunc
}

// NewMover creates the movement controller for one agent, parked at its
// home workstation.
func NewMover(profile agent.Profile, animator Animator, log *logger.Logger) *Mover {
	return &Mover{
		profile:  profile,
		animator: animator,
		logger:   log,
		pos:      profile.Home,
	}
}

// ID returns the controlled agent's id.
func (m *Mover) ID() string {
	return m.profile.ID
}

// Home returns the agent's static home workstation tile.
func (m *Mover) Home() grid.Position {
	return m.profile.Home
}

// Position returns the agent's current logical tile.
func (m *Mover) Position() grid.Position {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

// IsMoving reports whether a move is in flight.
func (m *Mover) IsMoving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moving
}

// MoveTo starts relocating the agent to target over duration. It rejects
// with ErrAlreadyMoving while a move is in flight; the original move is
// unaffected. On arrival the logical position becomes target.
func (m *Mover) MoveTo(target grid.Position, duration time.Duration) (*Move, error) {
	m.mu.Lock()
	if m.moving {
		m.mu.Unlock()
		m.logger.Warn("%s is already moving", m.profile.Name)
		return nil, ErrAlreadyMoving
	}

	ctx, cancel := context.WithCancel(context.Background())
	mv := newMove()
	from := m.pos
	m.moving = true
	m.current = mv
	m.cancel = cancel
	m.mu.Unlock()

	go m.run(ctx, mv, from, target, duration)
	return mv, nil
}

func (m *Mover) run(ctx context.Context, mv *Move, from, target grid.Position, duration time.Duration) {
	err := m.animator.AnimatePosition(ctx, m.profile.ID, from, target, duration)

	m.mu.Lock()
	if m.current != mv {
		// Stop already settled this move; nothing left to do.
		m.mu.Unlock()
		return
	}
	m.moving = false
	m.current = nil
	m.cancel = nil
	if err == nil {
		m.pos = target
	}
	m.mu.Unlock()

	if err != nil {
		mv.settle(ErrStopped)
		return
	}
	mv.settle(nil)
}

// Stop cancels any in-flight move immediately. The move settles with
// ErrStopped and never reports arrival; the logical position keeps its
// pre-move value. Idempotent.
func (m *Mover) Stop() {
	m.mu.Lock()
	if !m.moving {
		m.mu.Unlock()
		return
	}
	mv := m.current
	cancel := m.cancel
	m.moving = false
	m.current = nil
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	mv.settle(ErrStopped)
}

// Destroy releases the controller. Equivalent to Stop.
func (m *Mover) Destroy() {
	m.Stop()
}
