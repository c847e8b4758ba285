package spannerrepo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
)

const purgeCondition = `
	(status = @completed AND processed_at < @completedCutoff)
	OR (status = @failed AND processed_at < @failedCutoff)`

// PurgeRequest selects processed outbox events for removal. Pending events are never
// purged.
type PurgeRequest struct {
	CompletedBefore time.Time
	FailedBefore    time.Time
	DryRun          bool
}

// PurgeResult counts matching events per status.
type PurgeResult struct {
	Completed int64
	Failed    int64
	Deleted   int64
}

// PurgeOutbox deletes completed and failed events processed before the cutoffs. With
// DryRun set it only counts them.
func (s *Store) PurgeOutbox(ctx context.Context, req PurgeRequest) (PurgeResult, error) {
	params := map[string]interface{}{
		"completed":       contracts.OutboxStatusCompleted,
		"failed":          contracts.OutboxStatusFailed,
		"completedCutoff": req.CompletedBefore,
		"failedCutoff":    req.FailedBefore,
	}

	var result PurgeResult
	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		result = PurgeResult{}
		if err := countByStatus(ctx, txn, params, &result); err != nil {
			return err
		}
		if req.DryRun || result.Completed+result.Failed == 0 {
			return nil
		}

		n, err := txn.Update(ctx, spanner.Statement{
			SQL:    "DELETE FROM outbox_events WHERE " + purgeCondition,
			Params: params,
		})
		if err != nil {
			return fmt.Errorf("failed to delete outbox events: %w", err)
		}
		result.Deleted = n
		return nil
	})
	if err != nil {
		return PurgeResult{}, err
	}
	return result, nil
}

func countByStatus(ctx context.Context, rd reader, params map[string]interface{}, out *PurgeResult) error {
	iter := rd.Query(ctx, spanner.Statement{
		SQL:    "SELECT status, COUNT(*) FROM outbox_events WHERE " + purgeCondition + " GROUP BY status",
		Params: params,
	})
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to count outbox events: %w", err)
		}

		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return fmt.Errorf("failed to parse count: %w", err)
		}
		switch status {
		case contracts.OutboxStatusCompleted:
			out.Completed = count
		case contracts.OutboxStatusFailed:
			out.Failed = count
		}
	}
}
