package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// RelayConfig tunes the polling loop.
type RelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxRetries   int
}

// Relay publishes pending outbox events and records the outcome of each attempt.
type Relay struct {
	store     contracts.Store
	publisher contracts.Publisher
	clock     clock.Clock
	logger    *slog.Logger
	cfg       RelayConfig
}

// NewRelay creates a Relay.
func NewRelay(store contracts.Store, publisher contracts.Publisher, clk clock.Clock, logger *slog.Logger, cfg RelayConfig) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", "interval", r.cfg.PollInterval, "batch_size", r.cfg.BatchSize)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("outbox batch failed", "error", err)
			}
		}
	}
}

// ProcessBatch publishes one batch of pending events and returns how many were delivered.
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	var pending []*contracts.OutboxEvent
	err := r.store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
		var err error
		pending, err = tx.Outbox().ListPending(ctx, r.cfg.BatchSize)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("load pending events: %w", err)
	}

	delivered := 0
	for _, event := range pending {
		if ctx.Err() != nil {
			return delivered, ctx.Err()
		}

		pubErr := r.publisher.Publish(ctx, event)
		now := r.clock.Now()

		err := r.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
			if pubErr == nil {
				return tx.Outbox().MarkCompleted(ctx, event.EventID, now)
			}
			terminal := event.RetryCount+1 >= int64(r.cfg.MaxRetries)
			return tx.Outbox().MarkFailed(ctx, event.EventID, pubErr.Error(), terminal, now)
		})
		if err != nil {
			return delivered, fmt.Errorf("record outcome of event %s: %w", event.EventID, err)
		}

		if pubErr != nil {
			r.logger.Warn("outbox publish failed",
				"event_id", event.EventID,
				"event_type", event.EventType,
				"retry_count", event.RetryCount+1,
				"error", pubErr,
			)
			continue
		}
		delivered++
	}

	if delivered > 0 {
		r.logger.Debug("outbox batch published", "count", delivered)
	}
	return delivered, nil
}
