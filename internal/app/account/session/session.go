// Package session issues and verifies the bearer tokens handed to clients.
// Tokens are HS256 JWTs whose subject is the user id.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// ErrInvalidToken covers missing, malformed, expired and foreign tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Token is an issued session credential.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Manager signs and parses session tokens.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  clock.Clock
}

// NewManager creates a Manager.
func NewManager(secret, issuer string, ttl time.Duration, clk clock.Clock) *Manager {
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		clock:  clk,
	}
}

// Issue signs a new token for userID.
func (m *Manager) Issue(userID string) (Token, error) {
	now := m.clock.Now()
	expires := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   userID,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign session token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: expires}, nil
}

// Verify returns the user id carried by a valid token.
func (m *Manager) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
