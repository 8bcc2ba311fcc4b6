package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event StoredEvent) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO events (id, timestamp, type, agent_id, payload)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.Timestamp, event.Type, event.AgentID, string(payloadBytes),
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]StoredEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []StoredEvent
	for rows.Next() {
		var e StoredEvent
		var payloadStr string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Type, &e.AgentID, &payloadStr); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteEventRepository) GetAll(ctx context.Context, limit int) ([]StoredEvent, error) {
	query := `SELECT id, timestamp, type, agent_id, payload FROM events ORDER BY timestamp ASC`
	if limit > 0 {
		return r.getMany(ctx, query+` LIMIT ?`, limit)
	}
	return r.getMany(ctx, query)
}

func (r *SQLiteEventRepository) GetByAgent(ctx context.Context, agentID string, limit int) ([]StoredEvent, error) {
	query := `SELECT id, timestamp, type, agent_id, payload FROM events WHERE agent_id = ? ORDER BY timestamp ASC`
	if limit > 0 {
		return r.getMany(ctx, query+` LIMIT ?`, agentID, limit)
	}
	return r.getMany(ctx, query, agentID)
}

func (r *SQLiteEventRepository) GetByType(ctx context.Context, eventType string, limit int) ([]StoredEvent, error) {
	query := `SELECT id, timestamp, type, agent_id, payload FROM events WHERE type = ? ORDER BY timestamp ASC`
	if limit > 0 {
		return r.getMany(ctx, query+` LIMIT ?`, eventType, limit)
	}
	return r.getMany(ctx, query, eventType)
}

// ---------------------------------------------------------
// SQLiteSnapshotRepository
// ---------------------------------------------------------

type SQLiteSnapshotRepository struct {
	db *sql.DB
}

func NewSQLiteSnapshotRepository(db *sql.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

func (r *SQLiteSnapshotRepository) Upsert(ctx context.Context, snapshot AgentSnapshot) error {
	query := `
		INSERT INTO agents (agent_id, name, role, mood, activity, energy, task_count, pos_x, pos_y, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(agent_id) DO UPDATE SET
			name=excluded.name,
			role=excluded.role,
			mood=excluded.mood,
			activity=excluded.activity,
			energy=excluded.energy,
			task_count=excluded.task_count,
			pos_x=excluded.pos_x,
			pos_y=excluded.pos_y,
			last_updated=excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query,
		snapshot.AgentID, snapshot.Name, snapshot.Role, snapshot.Mood, snapshot.Activity,
		snapshot.Energy, snapshot.TaskCount, snapshot.PosX, snapshot.PosY, snapshot.LastUpdated,
	)
	return err
}

func (r *SQLiteSnapshotRepository) GetByAgentID(ctx context.Context, agentID string) (*AgentSnapshot, error) {
	query := `SELECT agent_id, name, role, mood, activity, energy, task_count, pos_x, pos_y, last_updated FROM agents WHERE agent_id = ?`
	var s AgentSnapshot
	err := r.db.QueryRowContext(ctx, query, agentID).Scan(
		&s.AgentID, &s.Name, &s.Role, &s.Mood, &s.Activity, &s.Energy, &s.TaskCount, &s.PosX, &s.PosY, &s.LastUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteSnapshotRepository) GetAll(ctx context.Context) ([]AgentSnapshot, error) {
	query := `SELECT agent_id, name, role, mood, activity, energy, task_count, pos_x, pos_y, last_updated FROM agents`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []AgentSnapshot
	for rows.Next() {
		var s AgentSnapshot
		if err := rows.Scan(&s.AgentID, &s.Name, &s.Role, &s.Mood, &s.Activity, &s.Energy, &s.TaskCount, &s.PosX, &s.PosY, &s.LastUpdated); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
