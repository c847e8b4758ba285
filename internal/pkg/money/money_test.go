package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := New(100, 1)
		require.NoError(t, err)
		num, ok := m.Numerator()
		assert.True(t, ok)
		assert.Equal(t, int64(100), num)
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := New(100, 0)
		assert.Error(t, err)
	})

	t.Run("negative denominator returns error", func(t *testing.T) {
		_, err := New(100, -1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})

	t.Run("negative numerator allowed", func(t *testing.T) {
		m, err := New(-100, 1)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestArithmetic(t *testing.T) {
	a := MustNew(1999, 100)
	b := MustNew(1250, 100)

	assert.Equal(t, "32.49", a.Add(b).String())
	assert.Equal(t, "7.49", a.Subtract(b).String())
	assert.Equal(t, "59.97", a.MultiplyInt(3).String())
	assert.True(t, b.LessThan(a))
	assert.True(t, a.GreaterThan(b))
	assert.True(t, a.Subtract(a).IsZero())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.50", "12.50", true},
		{"25/2", "12.50", true},
		{"1e2", "100.00", true},
		{" 3 ", "3.00", true},
		{"", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := Parse(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestJSON(t *testing.T) {
	t.Run("decimal values encode as numbers", func(t *testing.T) {
		data, err := json.Marshal(MustNew(1999, 100))
		require.NoError(t, err)
		assert.Equal(t, "19.99", string(data))

		data, err = json.Marshal(MustNew(1, 8))
		require.NoError(t, err)
		assert.Equal(t, "0.125", string(data))
	})

	t.Run("non-terminating values encode as fractions", func(t *testing.T) {
		data, err := json.Marshal(MustNew(1, 3))
		require.NoError(t, err)
		assert.Equal(t, `"1/3"`, string(data))

		var back Money
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, back.Equals(MustNew(1, 3)))
	})

	t.Run("decode accepts numbers and strings", func(t *testing.T) {
		var payload struct {
			A *Money `json:"a"`
			B *Money `json:"b"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"a": 10.5, "b": "2.25"}`), &payload))
		assert.True(t, payload.A.Equals(MustNew(21, 2)))
		assert.True(t, payload.B.Equals(MustNew(9, 4)))
	})

	t.Run("decode rejects garbage", func(t *testing.T) {
		var m Money
		assert.Error(t, json.Unmarshal([]byte(`"ten"`), &m))
	})
}

func TestParts(t *testing.T) {
	num, denom, err := MustNew(200, 2).Parts()
	require.NoError(t, err)
	assert.Equal(t, int64(100), num)
	assert.Equal(t, int64(1), denom)
}
