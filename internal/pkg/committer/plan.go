// Package committer collects Spanner mutations into a plan and applies them atomically.
//
// Repositories never write directly. Inside a read-write transaction they read through
// the transaction and add mutations to the CommitPlan; the Committer buffers the plan
// into the same transaction when the callback succeeds:
//
//	err := c.Run(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
//	    product, err := repo.GetByID(ctx, productID)
//	    ...
//	    plan.Add(productMut)
//	    plan.AddMultiple(outboxMuts)
//	    return nil
//	})
//
// Reads inside the callback do not observe mutations already in the plan.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply writes the plan outside of any read, as a single blind-write transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// Run executes fn in a read-write transaction with a fresh plan per attempt and buffers
// the plan when fn succeeds. Spanner may call fn more than once when it aborts a
// transaction, so fn must not have side effects outside the plan.
func (c *Committer) Run(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction, *CommitPlan) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		plan := NewPlan()
		if err := fn(ctx, txn, plan); err != nil {
			return err
		}
		if plan.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(plan.Mutations())
	})
	return err
}
