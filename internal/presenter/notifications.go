// Package presenter owns the transient visual layer of the office: the
// shared notification banner, per-agent speech bubbles and the movement
// animation wire format. It renders nothing itself; every visual is
// journaled as an event for connected renderers to play back.
package presenter

import (
	"context"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
)

// queueCapacity bounds the pending notification backlog. The banner shows
// one notification at a time, so a burst beyond this is dropped, not shown
// hours late.
const queueCapacity = 64

// NotificationTimings describes the banner lifecycle of one notification.
type NotificationTimings struct {
	SlideIn  time.Duration `json:"slide_in_ms"`
	Hold     time.Duration `json:"hold_ms"`
	SlideOut time.Duration `json:"slide_out_ms"`
}

// DefaultNotificationTimings matches the banner pacing of the office floor.
func DefaultNotificationTimings() NotificationTimings {
	return NotificationTimings{
		SlideIn:  500 * time.Millisecond,
		Hold:     4 * time.Second,
		SlideOut: 500 * time.Millisecond,
	}
}

func (t NotificationTimings) total() time.Duration {
	return t.SlideIn + t.Hold + t.SlideOut
}

// notificationPayload is the journaled wire form of a banner notification.
type notificationPayload struct {
	Text       string `json:"text"`
	SlideInMS  int64  `json:"slide_in_ms"`
	HoldMS     int64  `json:"hold_ms"`
	SlideOutMS int64  `json:"slide_out_ms"`
}

// NotificationQueue shows banner notifications strictly one at a time in
// submission order. Show never blocks the caller.
type NotificationQueue struct {
	eventLog *events.Log
	logger   *logger.Logger
	timings  NotificationTimings

	queue  chan string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewNotificationQueue starts the single banner worker.
func NewNotificationQueue(eventLog *events.Log, log *logger.Logger, timings NotificationTimings) *NotificationQueue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &NotificationQueue{
		eventLog: eventLog,
		logger:   log,
		timings:  timings,
		queue:    make(chan string, queueCapacity),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go q.run()
	return q
}

// Show enqueues a notification. It displays after everything queued before
// it has fully slid out.
func (q *NotificationQueue) Show(text string) {
	select {
	case q.queue <- text:
	default:
		q.logger.Warn("Notification queue full, dropping: %s", text)
	}
}

func (q *NotificationQueue) run() {
	defer close(q.done)
	for {
		select {
		case <-q.ctx.Done():
			return
		case text := <-q.queue:
			q.display(text)
		}
	}
}

// display plays one full banner lifecycle. The next notification only
// starts after the hidden event has been journaled.
func (q *NotificationQueue) display(text string) {
	q.eventLog.Append(events.OfficeEvent{
		Type: events.EventTypeNotificationShown,
		Payload: notificationPayload{
			Text:       text,
			SlideInMS:  q.timings.SlideIn.Milliseconds(),
			HoldMS:     q.timings.Hold.Milliseconds(),
			SlideOutMS: q.timings.SlideOut.Milliseconds(),
		},
	})

	timer := time.NewTimer(q.timings.total())
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-q.ctx.Done():
	}

	q.eventLog.Append(events.OfficeEvent{
		Type:    events.EventTypeNotificationHidden,
		Payload: notificationPayload{Text: text},
	})
}

// Destroy stops the worker. Queued notifications are discarded; a banner
// mid-display is hidden immediately.
func (q *NotificationQueue) Destroy() {
	q.cancel()
	<-q.done
}
