package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, h.Matches(hash, "s3cret!"))
	assert.False(t, h.Matches(hash, "wrong"))
	assert.False(t, h.Matches("not-a-hash", "s3cret!"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"too short", "abc", false},
		{"minimum length", "abcdef", true},
		{"multibyte counts runes", "ääääää", true},
		{"too long", strings.Repeat("x", 73), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("password", tt.password)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, validation.ErrInvalid)
		})
	}
}

func TestRandomPassword(t *testing.T) {
	a, err := RandomPassword()
	require.NoError(t, err)
	b, err := RandomPassword()
	require.NoError(t, err)

	assert.Len(t, a, 24)
	assert.NotEqual(t, a, b)
	assert.NoError(t, Validate("password", a))
}
