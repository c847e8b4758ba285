package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("empty list is not an error", func(t *testing.T) {
		var errs Errors
		assert.NoError(t, errs.Err())
	})

	t.Run("wrapped errors still match", func(t *testing.T) {
		var errs Errors
		errs.Add("name", "is required")
		errs.Add("stock", "must be >= %d", 0)

		err := fmt.Errorf("create product: %w", errs.Err())
		assert.True(t, errors.Is(err, ErrInvalid))
		assert.Len(t, FieldsOf(err), 2)
		assert.Contains(t, err.Error(), "stock: must be >= 0")
	})

	t.Run("single", func(t *testing.T) {
		err := Single("quantity", "must be at least 1")
		assert.ErrorIs(t, err, ErrInvalid)
		assert.Equal(t, []FieldError{{Field: "quantity", Message: "must be at least 1"}}, FieldsOf(err))
	})
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Alice@Example.com", "alice@example.com", true},
		{"  bob@shop.io ", "bob@shop.io", true},
		{"not-an-email", "", false},
		{"Alice <alice@example.com>", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeEmail(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
