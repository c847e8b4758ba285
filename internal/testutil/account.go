package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/storefront-service/internal/app/account/credentials"
	"github.com/light-bringer/storefront-service/internal/app/account/session"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// TestSecret signs session tokens in tests.
const TestSecret = "test-secret"

// NewHasher returns a hasher with the cheapest bcrypt cost.
func NewHasher() *credentials.Hasher {
	return credentials.NewHasher(bcrypt.MinCost)
}

// NewSessions returns a session manager with a one hour TTL.
func NewSessions(clk clock.Clock) *session.Manager {
	return session.NewManager(TestSecret, "storefront-test", time.Hour, clk)
}

// HashPassword hashes password with the test hasher.
func HashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := NewHasher().Hash(password)
	require.NoError(t, err)
	return hash
}
