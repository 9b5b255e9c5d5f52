// Package password hashes and verifies user passwords.
package password

import (
	"errors"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword is returned when attempting to hash an empty password.
	ErrEmptyPassword = oops.Code("PASSWORD_EMPTY").Errorf("password cannot be empty")

	// ErrPasswordTooLong is returned for inputs bcrypt would silently truncate.
	ErrPasswordTooLong = oops.Code("PASSWORD_TOO_LONG").Errorf("password exceeds 72 bytes")
)

// Hasher provides one-way password hashing and verification.
type Hasher interface {
	// Hash returns a salted hash that is safe to persist.
	Hash(plaintext string) (string, error)

	// Verify reports whether candidate matches storedHash. It never fails:
	// a malformed hash is a mismatch.
	Verify(storedHash, candidate string) bool
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. A cost outside bcrypt's range falls
// back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	if len(plaintext) > 72 {
		return "", ErrPasswordTooLong
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", oops.Code("PASSWORD_HASH_FAILED").Wrap(err)
	}
	return string(bytes), nil
}

func (h *BcryptHasher) Verify(storedHash, candidate string) bool {
	if storedHash == "" || candidate == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}

// IsValidationError reports whether err was caused by unacceptable input
// rather than a hashing failure.
func IsValidationError(err error) bool {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	switch oopsErr.Code() {
	case "PASSWORD_EMPTY", "PASSWORD_TOO_LONG":
		return true
	}
	return false
}
