// Package memory provides a Publisher that keeps events in process. The server uses it
// when no Kafka brokers are configured; tests use it to inspect what was relayed.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

// Publisher records published events and optionally fails on demand.
type Publisher struct {
	mu     sync.Mutex
	events []contracts.OutboxEvent
	fail   error
	logger *slog.Logger
}

// NewPublisher creates a Publisher. A nil logger disables logging.
func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger}
}

// Publish records the event, or returns the configured failure.
func (p *Publisher) Publish(_ context.Context, event *contracts.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail != nil {
		return p.fail
	}
	p.events = append(p.events, *event)
	if p.logger != nil {
		p.logger.Info("event published",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"aggregate_id", event.AggregateID,
		)
	}
	return nil
}

// FailWith makes subsequent publishes return err. Pass nil to recover.
func (p *Publisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = err
}

// Events returns a copy of everything published so far.
func (p *Publisher) Events() []contracts.OutboxEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]contracts.OutboxEvent(nil), p.events...)
}

func (p *Publisher) Close() error { return nil }
