// Package outbox turns domain events into outbox rows and relays stored rows to a broker.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/domainevent"
)

// Enrich converts a domain event to an outbox event with metadata.
func Enrich(event domainevent.Event, now time.Time) (*contracts.OutboxEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("serialize %s event: %w", event.EventType(), err)
	}
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     string(payload),
		Status:      contracts.OutboxStatusPending,
		CreatedAt:   now,
	}, nil
}

// Append writes events to the outbox of the current transaction.
func Append(ctx context.Context, repo contracts.OutboxRepository, events []domainevent.Event, now time.Time) error {
	for _, event := range events {
		enriched, err := Enrich(event, now)
		if err != nil {
			return err
		}
		if err := repo.Insert(ctx, enriched); err != nil {
			return fmt.Errorf("insert outbox event: %w", err)
		}
	}
	return nil
}
