package storage

import (
	"context"
	"time"

	"github.com/shimotmr/WilliamAIOfficeGame/internal/events"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/logger"
	"github.com/shimotmr/WilliamAIOfficeGame/internal/platform/metrics"
)

// writeTimeout bounds a single journal write.
const writeTimeout = 5 * time.Second

// JournalPersister writes journal events through to an EventRepository. It
// satisfies the event log's persister interface.
type JournalPersister struct {
	repo   EventRepository
	logger *logger.Logger
}

// NewJournalPersister wires the in-memory journal to durable storage.
func NewJournalPersister(repo EventRepository, log *logger.Logger) *JournalPersister {
	return &JournalPersister{repo: repo, logger: log}
}

// Append stores one event. Failures are logged and counted, never fatal;
// the in-memory journal remains the source of truth for a running server.
func (p *JournalPersister) Append(event events.OfficeEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	start := time.Now()
	err := p.repo.Append(ctx, StoredEvent{
		ID:        event.ID,
		Timestamp: event.Timestamp,
		Type:      string(event.Type),
		AgentID:   event.AgentID,
		Payload:   event.Payload,
	})
	metrics.Get().RecordEventWrite(time.Since(start), err)
	if err != nil {
		p.logger.Error("Journal write failed for %s: %v", event.Type, err)
	}
	return err
}
