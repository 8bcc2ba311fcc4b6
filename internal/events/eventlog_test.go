package events

import (
	"sync"
	"testing"
	"time"
)

type fakePersister struct {
	mu     sync.Mutex
	stored []OfficeEvent
}

func (p *fakePersister) Append(e OfficeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stored = append(p.stored, e)
	return nil
}

func (p *fakePersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.stored)
}

func TestAppendFillsIDAndTimestamp(t *testing.T) {
	log := NewLog(nil)

	log.Append(OfficeEvent{Type: EventTypeAgentState, AgentID: "coder"})

	history := log.Replay()
	if len(history) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(history))
	}
	if history[0].ID == "" {
		t.Error("Expected generated ID, got empty string")
	}
	if history[0].Timestamp.IsZero() {
		t.Error("Expected timestamp to be filled in")
	}
}

func TestReplayPreservesAppendOrder(t *testing.T) {
	log := NewLog(nil)

	log.Append(OfficeEvent{ID: "a", Type: EventTypeOfficeEventStarted})
	log.Append(OfficeEvent{ID: "b", Type: EventTypeNotificationShown})
	log.Append(OfficeEvent{ID: "c", Type: EventTypeOfficeEventCompleted})

	history := log.Replay()
	if len(history) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(history))
	}
	for i, want := range []string{"a", "b", "c"} {
		if history[i].ID != want {
			t.Errorf("Expected event %d to be %q, got %q", i, want, history[i].ID)
		}
	}
}

func TestGetByAgentAndType(t *testing.T) {
	log := NewLog(nil)

	log.Append(OfficeEvent{Type: EventTypeAgentState, AgentID: "coder"})
	log.Append(OfficeEvent{Type: EventTypeAgentState, AgentID: "writer"})
	log.Append(OfficeEvent{Type: EventTypeSpeechBubbleShown, AgentID: "coder"})

	byAgent := log.GetByAgent("coder")
	if len(byAgent) != 2 {
		t.Errorf("Expected 2 events for coder, got %d", len(byAgent))
	}

	byType := log.GetByType(EventTypeAgentState)
	if len(byType) != 2 {
		t.Errorf("Expected 2 AGENT_STATE events, got %d", len(byType))
	}
}

func TestAppendWritesThroughPersister(t *testing.T) {
	persister := &fakePersister{}
	log := NewLog(persister)

	log.Append(OfficeEvent{Type: EventTypeAgentMoveCompleted, AgentID: "analyst"})

	deadline := time.Now().Add(2 * time.Second)
	for persister.count() < 1 {
		if time.Now().After(deadline) {
			t.Fatal("Expected persister to receive the event")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
