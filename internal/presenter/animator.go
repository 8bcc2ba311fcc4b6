package presenter

import (
	"context"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/domain/grid"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
)

// movePayload is the journaled wire form of one movement leg. Grid and
// screen coordinates are both included so renderers need no projection
// logic of their own.
type movePayload struct {
	From       grid.Position    `json:"from"`
	To         grid.Position    `json:"to"`
	FromScreen grid.ScreenPoint `json:"from_screen"`
	ToScreen   grid.ScreenPoint `json:"to_screen"`
	DurationMS int64            `json:"duration_ms"`
}

// visualPayload is the journaled wire form of a transient visual or a piece
// of floating text.
type visualPayload struct {
	Kind       string           `json:"kind,omitempty"`
	Text       string           `json:"text,omitempty"`
	At         grid.Position    `json:"at"`
	AtScreen   grid.ScreenPoint `json:"at_screen"`
	DurationMS int64            `json:"duration_ms"`
}

// WireAnimator drives animations over the event journal: it announces each
// leg, waits out its wall-clock duration and announces completion. A
// renderer on the other side of the websocket interpolates in between.
type WireAnimator struct {
	eventLog *events.Log
}

// NewWireAnimator creates the journal-backed animator.
func NewWireAnimator(eventLog *events.Log) *WireAnimator {
	return &WireAnimator{eventLog: eventLog}
}

// AnimatePosition plays one walk. It returns nil after the full duration
// has elapsed and the completion event is journaled. A cancelled context
// aborts the wait; no completion event is written then.
func (a *WireAnimator) AnimatePosition(ctx context.Context, agentID string, from, to grid.Position, duration time.Duration) error {
	payload := movePayload{
		From:       from,
		To:         to,
		FromScreen: from.ToScreen(),
		ToScreen:   to.ToScreen(),
		DurationMS: duration.Milliseconds(),
	}
	a.eventLog.Append(events.OfficeEvent{
		Type:    events.EventTypeAgentMoveStarted,
		AgentID: agentID,
		Payload: payload,
	})

	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	a.eventLog.Append(events.OfficeEvent{
		Type:    events.EventTypeAgentMoveCompleted,
		AgentID: agentID,
		Payload: payload,
	})
	return nil
}

// PlayTransientVisual journals a short-lived effect at a tile, like the
// coffee icon over the kitchen.
func (a *WireAnimator) PlayTransientVisual(kind string, at grid.Position, duration time.Duration) {
	a.eventLog.Append(events.OfficeEvent{
		Type: events.EventTypeTransientVisual,
		Payload: visualPayload{
			Kind:       kind,
			At:         at,
			AtScreen:   at.ToScreen(),
			DurationMS: duration.Milliseconds(),
		},
	})
}

// ShowFloatingText journals a piece of text rising from a tile.
func (a *WireAnimator) ShowFloatingText(text string, at grid.Position, duration time.Duration) {
	a.eventLog.Append(events.OfficeEvent{
		Type: events.EventTypeFloatingText,
		Payload: visualPayload{
			Text:       text,
			At:         at,
			AtScreen:   at.ToScreen(),
			DurationMS: duration.Milliseconds(),
		},
	})
}
