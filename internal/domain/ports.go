package domain

import "time"

// OutboxPublisher publishes events drained from the transactional outbox.
type OutboxPublisher interface {
	// Publish hands the event to the broker; must be idempotent.
	Publish(event OutboxMessage) error
}

// OutboxRepository stores events for later publication.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// OutboxMessage carries one event awaiting publication.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats describes the current outbox backlog.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
