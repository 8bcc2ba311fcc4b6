package presenter

import (
	"testing"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
)

func fastTimings() NotificationTimings {
	return NotificationTimings{
		SlideIn:  time.Millisecond,
		Hold:     2 * time.Millisecond,
		SlideOut: time.Millisecond,
	}
}

// waitForEvents polls the journal until it holds at least n events of the
// given type or the deadline passes.
func waitForEvents(t *testing.T, el *events.Log, typ events.EventType, n int) []events.OfficeEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got := el.GetByType(typ)
		if len(got) >= n {
			return got
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %d %s events, have %d", n, typ, len(el.GetByType(typ)))
	return nil
}

func TestNotificationsShowInOrder(t *testing.T) {
	el := events.NewLog(nil)
	q := NewNotificationQueue(el, logger.NewLogger(), fastTimings())
	defer q.Destroy()

	q.Show("first")
	q.Show("second")
	q.Show("third")

	shown := waitForEvents(t, el, events.EventTypeNotificationShown, 3)
	want := []string{"first", "second", "third"}
	for i, w := range want {
		p, ok := shown[i].Payload.(notificationPayload)
		if !ok {
			t.Fatalf("Expected notification payload, got %T", shown[i].Payload)
		}
		if p.Text != w {
			t.Errorf("Expected notification %d to be %q, got %q", i, w, p.Text)
		}
	}
}

func TestNotificationsNeverOverlap(t *testing.T) {
	el := events.NewLog(nil)
	q := NewNotificationQueue(el, logger.NewLogger(), fastTimings())
	defer q.Destroy()

	q.Show("a")
	q.Show("b")

	waitForEvents(t, el, events.EventTypeNotificationHidden, 2)

	// Every shown must be followed by its hidden before the next shown.
	visible := 0
	for _, e := range el.Replay() {
		switch e.Type {
		case events.EventTypeNotificationShown:
			visible++
			if visible > 1 {
				t.Fatalf("Two notifications visible at once")
			}
		case events.EventTypeNotificationHidden:
			visible--
		}
	}
}

func TestBubbleReplacesExisting(t *testing.T) {
	el := events.NewLog(nil)
	b := NewBubbleBoard(el)
	defer b.Destroy()

	b.Show("coder", "first", time.Hour)
	b.Show("coder", "second", time.Hour)

	if !b.HasBubble("coder") {
		t.Fatalf("Expected coder to have a bubble")
	}

	shown := el.GetByType(events.EventTypeSpeechBubbleShown)
	hidden := el.GetByType(events.EventTypeSpeechBubbleHidden)
	if len(shown) != 2 {
		t.Errorf("Expected 2 shown events, got %d", len(shown))
	}
	if len(hidden) != 1 {
		t.Errorf("Expected 1 hidden event for the replaced bubble, got %d", len(hidden))
	}
}

func TestBubbleExpires(t *testing.T) {
	el := events.NewLog(nil)
	b := NewBubbleBoard(el)
	defer b.Destroy()

	b.Show("writer", "brb", 5*time.Millisecond)
	waitForEvents(t, el, events.EventTypeSpeechBubbleHidden, 1)

	if b.HasBubble("writer") {
		t.Errorf("Expected bubble to be gone after expiry")
	}
}

func TestHideUnknownAgentIsNoOp(t *testing.T) {
	el := events.NewLog(nil)
	b := NewBubbleBoard(el)
	defer b.Destroy()

	b.Hide("ghost")

	if got := el.GetByType(events.EventTypeSpeechBubbleHidden); len(got) != 0 {
		t.Errorf("Expected no hidden events for unknown agent, got %d", len(got))
	}
}

func TestBubblesAreIndependentPerAgent(t *testing.T) {
	el := events.NewLog(nil)
	b := NewBubbleBoard(el)
	defer b.Destroy()

	b.Show("coder", "one", time.Hour)
	b.Show("writer", "two", time.Hour)
	b.Hide("coder")

	if b.HasBubble("coder") {
		t.Errorf("Expected coder bubble hidden")
	}
	if !b.HasBubble("writer") {
		t.Errorf("Expected writer bubble untouched")
	}
}
