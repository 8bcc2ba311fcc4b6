// Package optimization provides concurrency tuning for high viewer load.
package optimization

import (
	"runtime"
)

// Config holds tuned parameters for high-load scenarios.
type Config struct {
	// Channel buffer sizes
	BroadcastChannelBuffer int
	ClientSendBuffer       int
	NotificationQueueSize  int

	// Connection pool
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Rate limiting
	MaxActionsPerMinute int
	MaxViewers          int
}

// DefaultConfig returns sensible defaults for production.
func DefaultConfig() *Config {
	numCPU := runtime.NumCPU()

	return &Config{
		BroadcastChannelBuffer: 256,
		ClientSendBuffer:       256,
		NotificationQueueSize:  64,

		DBMaxOpenConns: numCPU * 4,
		DBMaxIdleConns: numCPU * 2,

		MaxActionsPerMinute: 6,
		MaxViewers:          200,
	}
}

// LowResourceConfig returns minimal settings for development.
func LowResourceConfig() *Config {
	return &Config{
		BroadcastChannelBuffer: 16,
		ClientSendBuffer:       8,
		NotificationQueueSize:  16,

		DBMaxOpenConns: 5,
		DBMaxIdleConns: 2,

		MaxActionsPerMinute: 2,
		MaxViewers:          20,
	}
}

// Recommendations provides suggestions based on observed metrics.
type Recommendations struct {
	IncreaseBroadcastBuffer bool
	IncreaseDBConnections   bool
	ShrinkEventWindow       bool
	Notes                   []string
}

// Analyze examines a metrics snapshot and returns tuning recommendations.
func Analyze(metrics map[string]interface{}) *Recommendations {
	rec := &Recommendations{
		Notes: make([]string, 0),
	}

	// Check state sweep latency
	if tick, ok := metrics["tick"].(map[string]interface{}); ok {
		if maxLat, ok := tick["max_latency_ms"].(float64); ok && maxLat > 100 {
			rec.IncreaseBroadcastBuffer = true
			rec.Notes = append(rec.Notes, "State sweep latency exceeds 100ms - reduce roster or tick rate")
		}
	}

	// Check journal write latency
	if journal, ok := metrics["journal"].(map[string]interface{}); ok {
		if maxLat, ok := journal["max_write_lat_ms"].(float64); ok && maxLat > 50 {
			rec.IncreaseDBConnections = true
			rec.Notes = append(rec.Notes, "Journal write latency exceeds 50ms - increase DB connections")
		}
		if errors, ok := journal["errors"].(int64); ok && errors > 0 {
			rec.IncreaseDBConnections = true
			rec.Notes = append(rec.Notes, "Journal write errors detected - check DB connection pool")
		}
	}

	// Check event drop rate
	if officeEvents, ok := metrics["office_events"].(map[string]interface{}); ok {
		skipped, _ := officeEvents["skipped"].(int64)
		triggered, _ := officeEvents["triggered"].(int64)
		if triggered > 0 && skipped > triggered {
			rec.ShrinkEventWindow = true
			rec.Notes = append(rec.Notes, "Most triggers are dropped while busy - widen the delay window")
		}
	}

	// Check WebSocket backpressure
	if ws, ok := metrics["websocket"].(map[string]interface{}); ok {
		if errors, ok := ws["errors"].(int64); ok && errors > 0 {
			rec.IncreaseBroadcastBuffer = true
			rec.Notes = append(rec.Notes, "WebSocket errors detected - increase client send buffer")
		}
	}

	return rec
}
