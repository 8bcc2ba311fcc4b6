// Package metrics provides observability for the office server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance metrics.
type Collector struct {
	// State tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	StateChanges   int64
	LastTickTime   time.Time

	// Ambient event metrics
	EventsTriggered int64
	EventsSkipped   int64
	EventsCompleted int64
	EventDurSum     int64
	EventDurMax     int64

	// Presentation metrics
	NotificationsShown int64
	BubblesShown       int64

	// Journal metrics
	EventsWritten    int64
	EventWriteLatSum int64
	EventWriteLatMax int64
	EventWriteErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records a state tick cycle completion.
func (c *Collector) RecordTick(latency time.Duration) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordStateChange records one agent state mutation.
func (c *Collector) RecordStateChange() {
	atomic.AddInt64(&c.StateChanges, 1)
}

// RecordEventTriggered records the start of an ambient event.
func (c *Collector) RecordEventTriggered() {
	atomic.AddInt64(&c.EventsTriggered, 1)
}

// RecordEventSkipped records a trigger dropped while another event ran.
func (c *Collector) RecordEventSkipped() {
	atomic.AddInt64(&c.EventsSkipped, 1)
}

// RecordEventCompleted records a fully played-out ambient event.
func (c *Collector) RecordEventCompleted(duration time.Duration) {
	atomic.AddInt64(&c.EventsCompleted, 1)
	atomic.AddInt64(&c.EventDurSum, int64(duration))

	if int64(duration) > atomic.LoadInt64(&c.EventDurMax) {
		atomic.StoreInt64(&c.EventDurMax, int64(duration))
	}
}

// RecordNotification records a notification banner being shown.
func (c *Collector) RecordNotification() {
	atomic.AddInt64(&c.NotificationsShown, 1)
}

// RecordBubble records a speech bubble being shown.
func (c *Collector) RecordBubble() {
	atomic.AddInt64(&c.BubblesShown, 1)
}

// RecordEventWrite records a journal write to the database.
func (c *Collector) RecordEventWrite(latency time.Duration, err error) {
	atomic.AddInt64(&c.EventsWritten, 1)
	atomic.AddInt64(&c.EventWriteLatSum, int64(latency))

	if int64(latency) > atomic.LoadInt64(&c.EventWriteLatMax) {
		atomic.StoreInt64(&c.EventWriteLatMax, int64(latency))
	}

	if err != nil {
		atomic.AddInt64(&c.EventWriteErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)
	eventsWritten := atomic.LoadInt64(&c.EventsWritten)
	eventsCompleted := atomic.LoadInt64(&c.EventsCompleted)

	// Calculate averages
	var tickAvg, writeAvg, eventAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}
	if eventsWritten > 0 {
		writeAvg = float64(atomic.LoadInt64(&c.EventWriteLatSum)) / float64(eventsWritten) / 1e6
	}
	if eventsCompleted > 0 {
		eventAvg = float64(atomic.LoadInt64(&c.EventDurSum)) / float64(eventsCompleted) / 1e9 // seconds
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"state_changes":  atomic.LoadInt64(&c.StateChanges),
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"office_events": map[string]interface{}{
			"triggered":        atomic.LoadInt64(&c.EventsTriggered),
			"skipped":          atomic.LoadInt64(&c.EventsSkipped),
			"completed":        eventsCompleted,
			"avg_duration_sec": eventAvg,
			"max_duration_sec": float64(atomic.LoadInt64(&c.EventDurMax)) / 1e9,
		},

		"presentation": map[string]interface{}{
			"notifications_shown": atomic.LoadInt64(&c.NotificationsShown),
			"bubbles_shown":       atomic.LoadInt64(&c.BubblesShown),
		},

		"journal": map[string]interface{}{
			"written":          eventsWritten,
			"avg_write_lat_ms": writeAvg,
			"max_write_lat_ms": float64(atomic.LoadInt64(&c.EventWriteLatMax)) / 1e6,
			"errors":           atomic.LoadInt64(&c.EventWriteErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		// Tick metrics
		fmt.Fprintf(w, "# HELP office_tick_count Total state tick cycles\n")
		fmt.Fprintf(w, "# TYPE office_tick_count counter\n")
		fmt.Fprintf(w, "office_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP office_state_changes Total agent state mutations\n")
		fmt.Fprintf(w, "# TYPE office_state_changes counter\n")
		fmt.Fprintf(w, "office_state_changes %d\n\n", atomic.LoadInt64(&c.StateChanges))

		fmt.Fprintf(w, "# HELP office_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE office_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "office_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		// Ambient event metrics
		fmt.Fprintf(w, "# HELP office_events_triggered Total ambient events started\n")
		fmt.Fprintf(w, "# TYPE office_events_triggered counter\n")
		fmt.Fprintf(w, "office_events_triggered %d\n\n", atomic.LoadInt64(&c.EventsTriggered))

		fmt.Fprintf(w, "# HELP office_events_skipped Triggers dropped while busy\n")
		fmt.Fprintf(w, "# TYPE office_events_skipped counter\n")
		fmt.Fprintf(w, "office_events_skipped %d\n\n", atomic.LoadInt64(&c.EventsSkipped))

		fmt.Fprintf(w, "# HELP office_events_completed Total ambient events played out\n")
		fmt.Fprintf(w, "# TYPE office_events_completed counter\n")
		fmt.Fprintf(w, "office_events_completed %d\n\n", atomic.LoadInt64(&c.EventsCompleted))

		// Presentation metrics
		fmt.Fprintf(w, "# HELP office_notifications_shown Total notification banners\n")
		fmt.Fprintf(w, "# TYPE office_notifications_shown counter\n")
		fmt.Fprintf(w, "office_notifications_shown %d\n\n", atomic.LoadInt64(&c.NotificationsShown))

		fmt.Fprintf(w, "# HELP office_bubbles_shown Total speech bubbles\n")
		fmt.Fprintf(w, "# TYPE office_bubbles_shown counter\n")
		fmt.Fprintf(w, "office_bubbles_shown %d\n\n", atomic.LoadInt64(&c.BubblesShown))

		// Journal metrics
		fmt.Fprintf(w, "# HELP office_events_written Total journal entries written\n")
		fmt.Fprintf(w, "# TYPE office_events_written counter\n")
		fmt.Fprintf(w, "office_events_written %d\n\n", atomic.LoadInt64(&c.EventsWritten))

		fmt.Fprintf(w, "# HELP office_event_write_errors Total journal write errors\n")
		fmt.Fprintf(w, "# TYPE office_event_write_errors counter\n")
		fmt.Fprintf(w, "office_event_write_errors %d\n\n", atomic.LoadInt64(&c.EventWriteErrors))

		// WebSocket metrics
		fmt.Fprintf(w, "# HELP office_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE office_ws_connections gauge\n")
		fmt.Fprintf(w, "office_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP office_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE office_ws_messages_total counter\n")
		fmt.Fprintf(w, "office_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "office_ws_messages_total{direction=\"out\"} %d\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
