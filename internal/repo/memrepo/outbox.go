package memrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

type outboxRepo struct {
	tx *tx
}

func (r *outboxRepo) Insert(_ context.Context, event *contracts.OutboxEvent) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.state.outbox[event.EventID]; exists {
		return fmt.Errorf("outbox event %s already exists", event.EventID)
	}
	r.tx.state.outbox[event.EventID] = outboxRow{event: *event, seq: r.tx.state.next()}
	return nil
}

func (r *outboxRepo) List(_ context.Context, filter contracts.OutboxFilter) ([]*contracts.OutboxEvent, error) {
	rows := make([]outboxRow, 0, len(r.tx.state.outbox))
	for _, row := range r.tx.state.outbox {
		e := row.event
		if filter.EventType != "" && e.EventType != filter.EventType {
			continue
		}
		if filter.AggregateID != "" && e.AggregateID != filter.AggregateID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		rows = append(rows, row)
	}
	sortRows(rows, func(a, b outboxRow) bool {
		return newestFirst(a.event.CreatedAt, b.event.CreatedAt, a.seq, b.seq)
	})
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}
	return toEvents(rows), nil
}

func (r *outboxRepo) ListPending(_ context.Context, limit int) ([]*contracts.OutboxEvent, error) {
	rows := make([]outboxRow, 0)
	for _, row := range r.tx.state.outbox {
		if row.event.Status == contracts.OutboxStatusPending {
			rows = append(rows, row)
		}
	}
	sortRows(rows, func(a, b outboxRow) bool { return a.seq < b.seq })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return toEvents(rows), nil
}

func (r *outboxRepo) MarkCompleted(_ context.Context, eventID string, at time.Time) error {
	return r.modify(eventID, func(e *contracts.OutboxEvent) {
		e.Status = contracts.OutboxStatusCompleted
		e.ProcessedAt = &at
		e.ErrorMessage = ""
	})
}

func (r *outboxRepo) MarkFailed(_ context.Context, eventID, errMsg string, terminal bool, at time.Time) error {
	return r.modify(eventID, func(e *contracts.OutboxEvent) {
		e.RetryCount++
		e.ErrorMessage = errMsg
		if terminal {
			e.Status = contracts.OutboxStatusFailed
			e.ProcessedAt = &at
		}
	})
}

func (r *outboxRepo) modify(eventID string, fn func(e *contracts.OutboxEvent)) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	row, ok := r.tx.state.outbox[eventID]
	if !ok {
		return fmt.Errorf("outbox event %s not found", eventID)
	}
	fn(&row.event)
	r.tx.state.outbox[eventID] = row
	return nil
}

func toEvents(rows []outboxRow) []*contracts.OutboxEvent {
	out := make([]*contracts.OutboxEvent, len(rows))
	for i := range rows {
		e := rows[i].event
		out[i] = &e
	}
	return out
}
