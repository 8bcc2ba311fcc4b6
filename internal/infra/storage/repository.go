// Package storage provides the persistence layer for the office server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"context"
	"time"
)

// StoredEvent mirrors the journal event structure for persistence.
// The domain package should NOT import this; use interfaces instead.
type StoredEvent struct {
	ID        string      `json:"id" db:"id"`
	Timestamp time.Time   `json:"timestamp" db:"timestamp"`
	Type      string      `json:"type" db:"type"`
	AgentID   string      `json:"agent_id" db:"agent_id"`
	Payload   interface{} `json:"payload" db:"payload"`
}

// EventRepository defines the interface for journal persistence.
type EventRepository interface {
	// Append adds a new event to the immutable journal.
	Append(ctx context.Context, event StoredEvent) error

	// GetAll retrieves the full journal in chronological order, capped at
	// limit rows when limit > 0.
	GetAll(ctx context.Context, limit int) ([]StoredEvent, error)

	// GetByAgent retrieves all events attributed to one agent.
	GetByAgent(ctx context.Context, agentID string, limit int) ([]StoredEvent, error)

	// GetByType retrieves all events of one category.
	GetByType(ctx context.Context, eventType string, limit int) ([]StoredEvent, error)
}

// AgentSnapshot represents the last persisted state of an agent for quick
// reads across restarts.
type AgentSnapshot struct {
	AgentID     string    `json:"agent_id" db:"agent_id"`
	Name        string    `json:"name" db:"name"`
	Role        string    `json:"role" db:"role"`
	Mood        string    `json:"mood" db:"mood"`
	Activity    string    `json:"activity" db:"activity"`
	Energy      int       `json:"energy" db:"energy"`
	TaskCount   int       `json:"task_count" db:"task_count"`
	PosX        int       `json:"pos_x" db:"pos_x"`
	PosY        int       `json:"pos_y" db:"pos_y"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

// SnapshotRepository defines the interface for agent state snapshots.
type SnapshotRepository interface {
	// Upsert updates or inserts an agent snapshot.
	Upsert(ctx context.Context, snapshot AgentSnapshot) error

	// GetByAgentID retrieves one agent's snapshot.
	GetByAgentID(ctx context.Context, agentID string) (*AgentSnapshot, error)

	// GetAll retrieves every snapshot.
	GetAll(ctx context.Context) ([]AgentSnapshot, error)
}
