// Package events provides the append-only journal of everything that happens
// on the office floor. The websocket hub replays it to connected renderers;
// the storage layer writes it through to SQLite.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of an office event.
type EventType string

const (
	EventTypeOfficeEventStarted   EventType = "OFFICE_EVENT_STARTED"
	EventTypeOfficeEventCompleted EventType = "OFFICE_EVENT_COMPLETED"
	EventTypeNotificationShown    EventType = "NOTIFICATION_SHOWN"
	EventTypeNotificationHidden   EventType = "NOTIFICATION_HIDDEN"
	EventTypeSpeechBubbleShown    EventType = "SPEECH_BUBBLE_SHOWN"
	EventTypeSpeechBubbleHidden   EventType = "SPEECH_BUBBLE_HIDDEN"
	EventTypeAgentMoveStarted     EventType = "AGENT_MOVE_STARTED"
	EventTypeAgentMoveCompleted   EventType = "AGENT_MOVE_COMPLETED"
	EventTypeAgentState           EventType = "AGENT_STATE"
	EventTypeTransientVisual      EventType = "TRANSIENT_VISUAL"
	EventTypeFloatingText         EventType = "FLOATING_TEXT"
)

// OfficeEvent is an immutable record of one occurrence on the floor.
type OfficeEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	AgentID   string      `json:"agent_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Persister defines how an event is durably stored.
type Persister interface {
	Append(event OfficeEvent) error
}

// Log is the in-memory append-only journal of office events.
type Log struct {
	mu        sync.RWMutex
	events    []OfficeEvent
	persister Persister
}

// NewLog creates a new event log with an optional persister.
func NewLog(persister Persister) *Log {
	return &Log{
		events:    make([]OfficeEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. Events are immutable once appended.
// Missing IDs and timestamps are filled in.
func (l *Log) Append(event OfficeEvent) {
	if event.ID == "" {
		event.ID = NewEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	persister := l.persister
	l.mu.Unlock()

	if persister != nil {
		// Write through to persistent storage off the hot path.
		go func(e OfficeEvent) {
			_ = persister.Append(e)
		}(event)
	}
}

// Replay returns the full history of events in append order.
func (l *Log) Replay() []OfficeEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.events
}

// GetByAgent returns all events attributed to a specific agent.
func (l *Log) GetByAgent(agentID string) []OfficeEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []OfficeEvent
	for _, e := range l.events {
		if e.AgentID == agentID {
			result = append(result, e)
		}
	}
	return result
}

// GetByType returns all events of one category.
func (l *Log) GetByType(t EventType) []OfficeEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []OfficeEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// NewEventID creates a unique event identifier.
func NewEventID() string {
	return uuid.NewString()
}
