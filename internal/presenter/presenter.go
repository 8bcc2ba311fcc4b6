package presenter

import (
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/metrics"
)

// Presenter bundles the banner queue and the bubble board behind the
// surface the scheduler talks to.
type Presenter struct {
	Notifications *NotificationQueue
	Bubbles       *BubbleBoard
}

// New wires the full presentation layer onto one event journal.
func New(eventLog *events.Log, log *logger.Logger, timings NotificationTimings) *Presenter {
	return &Presenter{
		Notifications: NewNotificationQueue(eventLog, log, timings),
		Bubbles:       NewBubbleBoard(eventLog),
	}
}

// Notify enqueues a banner notification.
func (p *Presenter) Notify(text string) {
	p.Notifications.Show(text)
	metrics.Get().RecordNotification()
}

// Bubble shows a speech bubble over an agent.
func (p *Presenter) Bubble(agentID, text string, duration time.Duration) {
	p.Bubbles.Show(agentID, text, duration)
	metrics.Get().RecordBubble()
}

// Destroy tears the layer down.
func (p *Presenter) Destroy() {
	p.Notifications.Destroy()
	p.Bubbles.Destroy()
}
