package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

func TestNewUser(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("normalizes email", func(t *testing.T) {
		u, err := NewUser("u-1", "  Jane@Example.COM ", "Jane", RoleUser, "hash", now)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", u.Email())
		assert.False(t, u.IsAdmin())

		events := u.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "account.registered", events[0].EventType())
	})

	t.Run("invalid fields", func(t *testing.T) {
		_, err := NewUser("u-2", "not-an-email", " ", Role("root"), "hash", now)
		assert.ErrorIs(t, err, validation.ErrInvalid)
		assert.Len(t, validation.FieldsOf(err), 3)
	})
}

func TestUpdateProfile(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	newUser := func(t *testing.T) *User {
		u, err := NewUser("u-1", "jane@example.com", "Jane", RoleUser, "hash", now)
		require.NoError(t, err)
		u.ClearEvents()
		u.Changes().Clear()
		return u
	}

	t.Run("applies supplied fields", func(t *testing.T) {
		u := newUser(t)
		name, email := "Jane Doe", "JANE.DOE@example.com"

		require.NoError(t, u.UpdateProfile(Profile{Name: &name, Email: &email}, later))
		assert.Equal(t, "Jane Doe", u.Name())
		assert.Equal(t, "jane.doe@example.com", u.Email())
		assert.Equal(t, later, u.UpdatedAt())
		assert.True(t, u.Changes().Dirty(FieldEmail))
		assert.Len(t, u.DomainEvents(), 1)
	})

	t.Run("invalid email leaves user untouched", func(t *testing.T) {
		u := newUser(t)
		name, email := "Other", "bad"

		err := u.UpdateProfile(Profile{Name: &name, Email: &email}, later)
		assert.ErrorIs(t, err, validation.ErrInvalid)
		assert.Equal(t, "Jane", u.Name())
		assert.False(t, u.Changes().HasChanges())
	})

	t.Run("role change", func(t *testing.T) {
		u := newUser(t)
		role := RoleAdmin

		require.NoError(t, u.UpdateProfile(Profile{Role: &role}, later))
		assert.True(t, u.IsAdmin())
	})
}

func TestPasswordEvents(t *testing.T) {
	now := time.Now().UTC()
	u, err := NewUser("u-1", "jane@example.com", "Jane", RoleUser, "hash", now)
	require.NoError(t, err)
	u.ClearEvents()

	u.SetPasswordHash("new-hash", now)
	u.RequestPasswordReset(now)

	assert.Equal(t, "new-hash", u.PasswordHash())
	events := u.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "account.password_changed", events[0].EventType())
	assert.Equal(t, "account.password_reset_requested", events[1].EventType())
}
