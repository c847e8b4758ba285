package reset_password

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/repo/memrepo"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	clk := testutil.NewMockClock()
	testutil.SeedUser(t, store, "jane@example.com", domain.RoleUser, "hash", clk.Now())
	interactor := NewInteractor(store, clk, testutil.DiscardLogger())

	assert.NoError(t, interactor.Execute(ctx, &Request{Email: "nobody@example.com"}))
	assert.Empty(t, testutil.OutboxEventTypes(t, store))

	assert.NoError(t, interactor.Execute(ctx, &Request{Email: "Jane@Example.com"}))
	assert.Equal(t, []string{"account.password_reset_requested"}, testutil.OutboxEventTypes(t, store))
}
