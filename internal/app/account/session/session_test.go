package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

func TestManager(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	m := NewManager("test-secret", "storefront", time.Hour, clk)

	t.Run("round trip", func(t *testing.T) {
		tok, err := m.Issue("user-1")
		require.NoError(t, err)
		assert.Equal(t, clk.Now().Add(time.Hour), tok.ExpiresAt)

		userID, err := m.Verify(tok.Value)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		a, err := m.Issue("user-1")
		require.NoError(t, err)
		b, err := m.Issue("user-1")
		require.NoError(t, err)
		assert.NotEqual(t, a.Value, b.Value)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := m.Issue("user-1")
		require.NoError(t, err)

		clk.Advance(2 * time.Hour)
		defer clk.Advance(-2 * time.Hour)

		_, err = m.Verify(tok.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager("other-secret", "storefront", time.Hour, clk)
		tok, err := other.Issue("user-1")
		require.NoError(t, err)

		_, err = m.Verify(tok.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewManager("test-secret", "someone-else", time.Hour, clk)
		tok, err := other.Issue("user-1")
		require.NoError(t, err)

		_, err = m.Verify(tok.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage and empty", func(t *testing.T) {
		_, err := m.Verify("")
		assert.ErrorIs(t, err, ErrInvalidToken)
		_, err = m.Verify("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
