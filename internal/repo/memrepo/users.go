package memrepo

import (
	"context"
	"fmt"
	"strings"

	account "github.com/light-bringer/storefront-service/internal/app/account/domain"
)

type userRepo struct {
	tx *tx
}

func (r *userRepo) GetByID(_ context.Context, userID string) (*account.User, error) {
	row, ok := r.tx.state.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", account.ErrUserNotFound, userID)
	}
	return account.Reconstruct(row.snap), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*account.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, row := range r.tx.state.users {
		if row.snap.Email == email {
			return account.Reconstruct(row.snap), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", account.ErrUserNotFound, email)
}

func (r *userRepo) List(_ context.Context) ([]*account.User, error) {
	rows := make([]userRow, 0, len(r.tx.state.users))
	for _, row := range r.tx.state.users {
		rows = append(rows, row)
	}
	sortRows(rows, func(a, b userRow) bool {
		return newestFirst(a.snap.CreatedAt, b.snap.CreatedAt, a.seq, b.seq)
	})

	out := make([]*account.User, len(rows))
	for i, row := range rows {
		out[i] = account.Reconstruct(row.snap)
	}
	return out, nil
}

func (r *userRepo) Insert(_ context.Context, user *account.User) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.state.users[user.ID()]; exists {
		return fmt.Errorf("user %s already exists", user.ID())
	}
	if err := r.checkEmail(user.ID(), user.Email()); err != nil {
		return err
	}
	snap := user.Snapshot()
	snap.Version = 1
	r.tx.state.users[user.ID()] = userRow{snap: snap, seq: r.tx.state.next()}
	return nil
}

func (r *userRepo) Update(_ context.Context, user *account.User) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if !user.Changes().HasChanges() {
		return nil
	}
	row, ok := r.tx.state.users[user.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", account.ErrUserNotFound, user.ID())
	}
	if err := r.checkEmail(user.ID(), user.Email()); err != nil {
		return err
	}
	snap := user.Snapshot()
	snap.Version = row.snap.Version + 1
	r.tx.state.users[user.ID()] = userRow{snap: snap, seq: row.seq}
	return nil
}

func (r *userRepo) Delete(_ context.Context, userID string) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.state.users[userID]; !ok {
		return fmt.Errorf("%w: %s", account.ErrUserNotFound, userID)
	}
	delete(r.tx.state.users, userID)
	return nil
}

// checkEmail plays the role of the unique index on users.email.
func (r *userRepo) checkEmail(userID, email string) error {
	for id, row := range r.tx.state.users {
		if id != userID && row.snap.Email == email {
			return fmt.Errorf("%w: %s", account.ErrEmailTaken, email)
		}
	}
	return nil
}
