// Package credentials hashes and verifies account passwords with bcrypt.
package credentials

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 6

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

// Hasher hashes and checks passwords.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher. A cost of 0 selects bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Validate checks password strength rules for the given form field.
func Validate(field, password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return validation.Single(field, "must be at least %d characters", MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return validation.Single(field, "must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Matches reports whether password matches hash. Malformed hashes never match.
func (h *Hasher) Matches(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ErrRandom is returned when the system random source fails.
var ErrRandom = errors.New("generate random password")

// RandomPassword returns a 24 character hex password for accounts created without one.
func RandomPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandom, err)
	}
	return hex.EncodeToString(buf), nil
}
