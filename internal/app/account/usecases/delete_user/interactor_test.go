package delete_user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	clk := testutil.NewMockClock()
	admin := testutil.SeedUser(t, store, "admin@example.com", domain.RoleAdmin, "hash", clk.Now())
	user := testutil.SeedUser(t, store, "jane@example.com", domain.RoleUser, "hash", clk.Now())
	interactor := NewInteractor(store, clk)

	t.Run("admin cannot delete themself", func(t *testing.T) {
		err := interactor.Execute(ctx, &Request{UserID: admin.ID(), ActorID: admin.ID()})
		assert.ErrorIs(t, err, domain.ErrCannotDeleteSelf)
	})

	t.Run("deletes another account", func(t *testing.T) {
		require.NoError(t, interactor.Execute(ctx, &Request{UserID: user.ID(), ActorID: admin.ID()}))

		err := store.Read(ctx, func(ctx context.Context, tx contracts.Tx) error {
			_, err := tx.Users().GetByID(ctx, user.ID())
			return err
		})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Equal(t, []string{"account.deleted"}, testutil.OutboxEventTypes(t, store))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := interactor.Execute(ctx, &Request{UserID: "missing", ActorID: admin.ID()})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
