package presenter

import (
	"context"
	"sync"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
)

// bubblePayload is the journaled wire form of a speech bubble.
type bubblePayload struct {
	Text       string `json:"text,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
}

// bubble is one live speech bubble. The pointer doubles as its identity so
// a stale expiry goroutine never hides a replacement.
type bubble struct {
	cancel context.CancelFunc
}

// BubbleBoard tracks at most one speech bubble per agent. Showing a new
// bubble replaces the agent's current one immediately.
type BubbleBoard struct {
	eventLog *events.Log

	mu     sync.Mutex
	active map[string]*bubble
}

// NewBubbleBoard creates an empty board.
func NewBubbleBoard(eventLog *events.Log) *BubbleBoard {
	return &BubbleBoard{
		eventLog: eventLog,
		active:   make(map[string]*bubble),
	}
}

// Show displays a bubble over an agent for the given duration, replacing
// any bubble the agent already has.
func (b *BubbleBoard) Show(agentID, text string, duration time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	bub := &bubble{cancel: cancel}

	b.mu.Lock()
	if prev, ok := b.active[agentID]; ok {
		prev.cancel()
		b.appendHidden(agentID)
	}
	b.active[agentID] = bub
	b.mu.Unlock()

	b.eventLog.Append(events.OfficeEvent{
		Type:    events.EventTypeSpeechBubbleShown,
		AgentID: agentID,
		Payload: bubblePayload{Text: text, DurationMS: duration.Milliseconds()},
	})

	go b.expire(ctx, agentID, bub, duration)
}

// expire hides the bubble after its duration unless it was replaced or
// hidden first, in which case the replacer already journaled the hide.
func (b *BubbleBoard) expire(ctx context.Context, agentID string, bub *bubble, duration time.Duration) {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	b.mu.Lock()
	if b.active[agentID] == bub {
		delete(b.active, agentID)
		b.appendHidden(agentID)
	}
	b.mu.Unlock()
}

// Hide removes an agent's current bubble. No-op when the agent has none.
func (b *BubbleBoard) Hide(agentID string) {
	b.mu.Lock()
	if bub, ok := b.active[agentID]; ok {
		delete(b.active, agentID)
		bub.cancel()
		b.appendHidden(agentID)
	}
	b.mu.Unlock()
}

// Destroy hides every active bubble.
func (b *BubbleBoard) Destroy() {
	b.mu.Lock()
	for agentID, bub := range b.active {
		bub.cancel()
		b.appendHidden(agentID)
		delete(b.active, agentID)
	}
	b.mu.Unlock()
}

// HasBubble reports whether an agent currently shows a bubble.
func (b *BubbleBoard) HasBubble(agentID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.active[agentID]
	return ok
}

func (b *BubbleBoard) appendHidden(agentID string) {
	b.eventLog.Append(events.OfficeEvent{
		Type:    events.EventTypeSpeechBubbleHidden,
		AgentID: agentID,
	})
}
