package list_events

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Request filters the outbox. Zero Limit means DefaultLimit.
type Request struct {
	EventType   string
	AggregateID string
	Status      string
	Limit       int
}

// Query lists outbox events for the admin event log.
type Query struct {
	store contracts.Store
}

// NewQuery creates a new list events query.
func NewQuery(store contracts.Store) *Query {
	return &Query{store: store}
}

// Execute returns matching events newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.OutboxEvent, error) {
	var errs validation.Errors
	limit := req.Limit
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 0 || limit > MaxLimit:
		errs.Add("limit", "must be between 1 and %d", MaxLimit)
	}
	switch req.Status {
	case "", contracts.OutboxStatusPending, contracts.OutboxStatusCompleted, contracts.OutboxStatusFailed:
	default:
		errs.Add("status", "must be pending, completed or failed")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var events []*contracts.OutboxEvent
	err := q.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		events, err = tx.Outbox().List(ctx, contracts.OutboxFilter{
			EventType:   req.EventType,
			AggregateID: req.AggregateID,
			Status:      req.Status,
			Limit:       limit,
		})
		return err
	})
	return events, err
}
