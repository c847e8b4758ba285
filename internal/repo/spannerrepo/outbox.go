package spannerrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

type outboxRepo struct {
	tx    *tx
	model *m_outbox.Model
}

func newOutboxRepo(t *tx) *outboxRepo {
	return &outboxRepo{tx: t, model: m_outbox.NewModel()}
}

func (r *outboxRepo) Insert(_ context.Context, event *contracts.OutboxEvent) error {
	data := &m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     spanner.NullJSON{Value: json.RawMessage(event.Payload), Valid: event.Payload != ""},
		Status:      event.Status,
		CreatedAt:   event.CreatedAt,
		RetryCount:  event.RetryCount,
	}
	if event.ProcessedAt != nil {
		data.ProcessedAt = spanner.NullTime{Time: *event.ProcessedAt, Valid: true}
	}
	if event.ErrorMessage != "" {
		data.ErrorMessage = spanner.NullString{StringVal: event.ErrorMessage, Valid: true}
	}
	return r.tx.write(r.model.InsertMut(data))
}

// List returns events newest first.
func (r *outboxRepo) List(ctx context.Context, filter contracts.OutboxFilter) ([]*contracts.OutboxEvent, error) {
	q := query.From(m_outbox.TableName).
		Select(m_outbox.Columns...).
		OrderBy(m_outbox.CreatedAt, query.Desc).
		OrderBy(m_outbox.EventID, query.Asc)
	if filter.EventType != "" {
		q = q.Where(query.Eq(m_outbox.EventType, filter.EventType))
	}
	if filter.AggregateID != "" {
		q = q.Where(query.Eq(m_outbox.AggregateID, filter.AggregateID))
	}
	if filter.Status != "" {
		q = q.Where(query.Eq(m_outbox.Status, filter.Status))
	}
	if filter.Limit > 0 {
		q = q.Limit(int64(filter.Limit))
	}

	events, err := queryRows(ctx, r.tx.rd, q.Build(), decodeOutboxEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox events: %w", err)
	}
	return events, nil
}

// ListPending returns pending events oldest first.
func (r *outboxRepo) ListPending(ctx context.Context, limit int) ([]*contracts.OutboxEvent, error) {
	q := query.From(m_outbox.TableName).
		Select(m_outbox.Columns...).
		Where(query.Eq(m_outbox.Status, contracts.OutboxStatusPending)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		OrderBy(m_outbox.EventID, query.Asc)
	if limit > 0 {
		q = q.Limit(int64(limit))
	}

	events, err := queryRows(ctx, r.tx.rd, q.Build(), decodeOutboxEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending outbox events: %w", err)
	}
	return events, nil
}

func (r *outboxRepo) MarkCompleted(ctx context.Context, eventID string, at time.Time) error {
	if _, err := r.get(ctx, eventID); err != nil {
		return err
	}
	return r.tx.write(r.model.UpdateMut(eventID, map[string]interface{}{
		m_outbox.Status:       contracts.OutboxStatusCompleted,
		m_outbox.ProcessedAt:  at,
		m_outbox.ErrorMessage: spanner.NullString{},
	}))
}

// MarkFailed increments the retry count read in this transaction.
func (r *outboxRepo) MarkFailed(ctx context.Context, eventID, errMsg string, terminal bool, at time.Time) error {
	event, err := r.get(ctx, eventID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		m_outbox.RetryCount:   event.RetryCount + 1,
		m_outbox.ErrorMessage: spanner.NullString{StringVal: errMsg, Valid: errMsg != ""},
	}
	if terminal {
		updates[m_outbox.Status] = contracts.OutboxStatusFailed
		updates[m_outbox.ProcessedAt] = at
	}
	return r.tx.write(r.model.UpdateMut(eventID, updates))
}

func (r *outboxRepo) get(ctx context.Context, eventID string) (*contracts.OutboxEvent, error) {
	if r.tx.plan == nil {
		return nil, contracts.ErrReadOnly
	}
	row, err := r.tx.rd.ReadRow(ctx, m_outbox.TableName, spanner.Key{eventID}, m_outbox.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, fmt.Errorf("outbox event %s not found", eventID)
		}
		return nil, fmt.Errorf("failed to read outbox event: %w", err)
	}
	return decodeOutboxEvent(row)
}

func decodeOutboxEvent(row *spanner.Row) (*contracts.OutboxEvent, error) {
	var data m_outbox.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse outbox event: %w", err)
	}

	event := &contracts.OutboxEvent{
		EventID:      data.EventID,
		EventType:    data.EventType,
		AggregateID:  data.AggregateID,
		Status:       data.Status,
		CreatedAt:    data.CreatedAt,
		RetryCount:   data.RetryCount,
		ErrorMessage: data.ErrorMessage.StringVal,
	}
	if data.Payload.Valid {
		raw, err := json.Marshal(data.Payload.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload of %s: %w", data.EventID, err)
		}
		event.Payload = string(raw)
	}
	if data.ProcessedAt.Valid {
		at := data.ProcessedAt.Time
		event.ProcessedAt = &at
	}
	return event, nil
}
