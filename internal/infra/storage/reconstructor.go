package storage

import (
	"context"
	"fmt"
	"time"
)

// Reconstructor rebuilds agent snapshots from the journal.
// State = f(events): the events table is the source of truth, the agents
// table is a disposable read model that can be regenerated at any point.
type Reconstructor struct {
	eventRepo EventRepository
	snapRepo  SnapshotRepository
}

// NewReconstructor creates a new snapshot reconstructor.
func NewReconstructor(eventRepo EventRepository, snapRepo SnapshotRepository) *Reconstructor {
	return &Reconstructor{eventRepo: eventRepo, snapRepo: snapRepo}
}

// RebuildSnapshots replays every persisted agent state event in order and
// upserts the final state per agent. Returns the number of agents rebuilt.
func (r *Reconstructor) RebuildSnapshots(ctx context.Context) (int, error) {
	stateEvents, err := r.eventRepo.GetByType(ctx, "AGENT_STATE", 0)
	if err != nil {
		return 0, fmt.Errorf("failed to load state events: %w", err)
	}

	latest := make(map[string]AgentSnapshot)
	for _, e := range stateEvents {
		payload, ok := e.Payload.(map[string]interface{})
		if !ok {
			continue
		}
		snap := AgentSnapshot{
			AgentID:     e.AgentID,
			Mood:        stringField(payload, "mood"),
			Activity:    stringField(payload, "activity"),
			Energy:      intField(payload, "energy"),
			TaskCount:   intField(payload, "task_count"),
			LastUpdated: e.Timestamp,
		}
		latest[e.AgentID] = snap
	}

	// Movement completions carry the final tile.
	moveEvents, err := r.eventRepo.GetByType(ctx, "AGENT_MOVE_COMPLETED", 0)
	if err != nil {
		return 0, fmt.Errorf("failed to load movement events: %w", err)
	}
	for _, e := range moveEvents {
		snap, ok := latest[e.AgentID]
		if !ok {
			continue
		}
		payload, ok := e.Payload.(map[string]interface{})
		if !ok {
			continue
		}
		if to, ok := payload["to"].(map[string]interface{}); ok {
			snap.PosX = intField(to, "x")
			snap.PosY = intField(to, "y")
			if e.Timestamp.After(snap.LastUpdated) {
				snap.LastUpdated = e.Timestamp
			}
			latest[e.AgentID] = snap
		}
	}

	for _, snap := range latest {
		if snap.LastUpdated.IsZero() {
			snap.LastUpdated = time.Now()
		}
		if err := r.snapRepo.Upsert(ctx, snap); err != nil {
			return 0, fmt.Errorf("failed to upsert snapshot for %s: %w", snap.AgentID, err)
		}
	}
	return len(latest), nil
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func intField(m map[string]interface{}, key string) int {
	// JSON numbers decode as float64.
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return 0
}
