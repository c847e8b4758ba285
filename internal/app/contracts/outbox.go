package contracts

import (
	"context"
	"time"
)

// Outbox event statuses.
const (
	OutboxStatusPending   = "pending"
	OutboxStatusCompleted = "completed"
	OutboxStatusFailed    = "failed"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID      string
	EventType    string
	AggregateID  string
	Payload      string // JSON
	Status       string
	CreatedAt    time.Time
	ProcessedAt  *time.Time
	RetryCount   int64
	ErrorMessage string
}

// OutboxFilter narrows event listings. Empty fields match everything.
type OutboxFilter struct {
	EventType   string
	AggregateID string
	Status      string
	Limit       int
}

// OutboxRepository stores events written alongside aggregate changes.
type OutboxRepository interface {
	Insert(ctx context.Context, event *OutboxEvent) error
	// List returns events newest first.
	List(ctx context.Context, filter OutboxFilter) ([]*OutboxEvent, error)
	// ListPending returns up to limit pending events, oldest first.
	ListPending(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkCompleted(ctx context.Context, eventID string, at time.Time) error
	// MarkFailed records a failed attempt. When terminal is set the event leaves the queue.
	MarkFailed(ctx context.Context, eventID string, errMsg string, terminal bool, at time.Time) error
}

// Publisher delivers outbox events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event *OutboxEvent) error
	Close() error
}
