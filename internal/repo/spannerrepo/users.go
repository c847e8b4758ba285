package spannerrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	account "github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/models/m_user"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

type userRepo struct {
	tx    *tx
	model *m_user.Model
}

func newUserRepo(t *tx) *userRepo {
	return &userRepo{tx: t, model: m_user.NewModel()}
}

func (r *userRepo) GetByID(ctx context.Context, userID string) (*account.User, error) {
	row, err := r.tx.rd.ReadRow(ctx, m_user.TableName, spanner.Key{userID}, m_user.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", account.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	return decodeUser(row)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	stmt := query.From(m_user.TableName).
		Select(m_user.Columns...).
		Where(query.Eq(m_user.Email, email)).
		Limit(1).
		Build()

	users, err := queryRows(ctx, r.tx.rd, stmt, decodeUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: %s", account.ErrUserNotFound, email)
	}
	return users[0], nil
}

// List returns users newest first.
func (r *userRepo) List(ctx context.Context) ([]*account.User, error) {
	stmt := query.From(m_user.TableName).
		Select(m_user.Columns...).
		OrderBy(m_user.CreatedAt, query.Desc).
		OrderBy(m_user.UserID, query.Asc).
		Build()

	users, err := queryRows(ctx, r.tx.rd, stmt, decodeUser)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepo) Insert(ctx context.Context, user *account.User) error {
	if err := r.checkEmail(ctx, user.ID(), user.Email()); err != nil {
		return err
	}
	data := userToData(user)
	data.Version = 1
	return r.tx.write(r.model.InsertMut(data))
}

func (r *userRepo) Update(ctx context.Context, user *account.User) error {
	changes := user.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := map[string]interface{}{
		m_user.UpdatedAt: user.UpdatedAt(),
		m_user.Version:   user.Version() + 1,
	}
	if changes.Dirty(account.FieldEmail) {
		if err := r.checkEmail(ctx, user.ID(), user.Email()); err != nil {
			return err
		}
		updates[m_user.Email] = user.Email()
	}
	if changes.Dirty(account.FieldName) {
		updates[m_user.Name] = user.Name()
	}
	if changes.Dirty(account.FieldRole) {
		updates[m_user.Role] = string(user.Role())
	}
	if changes.Dirty(account.FieldPasswordHash) {
		updates[m_user.PasswordHash] = user.PasswordHash()
	}

	return r.tx.write(r.model.UpdateMut(user.ID(), updates))
}

func (r *userRepo) Delete(ctx context.Context, userID string) error {
	if r.tx.plan == nil {
		return contracts.ErrReadOnly
	}
	if _, err := r.GetByID(ctx, userID); err != nil {
		return err
	}
	return r.tx.write(r.model.DeleteMut(userID))
}

// checkEmail reads the unique index inside the transaction so a conflicting insert
// surfaces as ErrEmailTaken instead of a commit failure.
func (r *userRepo) checkEmail(ctx context.Context, userID, email string) error {
	if r.tx.plan == nil {
		return contracts.ErrReadOnly
	}
	existing, err := r.GetByEmail(ctx, email)
	if errors.Is(err, account.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID() != userID {
		return fmt.Errorf("%w: %s", account.ErrEmailTaken, email)
	}
	return nil
}

func userToData(user *account.User) *m_user.Data {
	return &m_user.Data{
		UserID:       user.ID(),
		Email:        user.Email(),
		Name:         user.Name(),
		Role:         string(user.Role()),
		PasswordHash: user.PasswordHash(),
		Version:      user.Version(),
		CreatedAt:    user.CreatedAt(),
		UpdatedAt:    user.UpdatedAt(),
	}
}

func decodeUser(row *spanner.Row) (*account.User, error) {
	var data m_user.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return account.Reconstruct(account.Snapshot{
		ID:           data.UserID,
		Email:        data.Email,
		Name:         data.Name,
		Role:         account.Role(data.Role),
		PasswordHash: data.PasswordHash,
		Version:      data.Version,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}), nil
}
