package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"explorehub-backend/pkg/password"
)

func TestHash(t *testing.T) {
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	t.Run("produces bcrypt hash", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))
		assert.NotEqual(t, "secret1", hash)
	})

	t.Run("same password produces different hashes (salt)", func(t *testing.T) {
		hash1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		hash2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		require.Error(t, err)
		assert.True(t, password.IsValidationError(err))
	})

	t.Run("rejects password longer than 72 bytes", func(t *testing.T) {
		_, err := hasher.Hash(strings.Repeat("a", 73))
		require.Error(t, err)
		assert.True(t, password.IsValidationError(err))
	})
}

func TestVerify(t *testing.T) {
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	for _, p := range []string{"secret1", "correct horse battery staple", "ünïcødé-pw"} {
		hash, err := hasher.Hash(p)
		require.NoError(t, err)

		assert.True(t, hasher.Verify(hash, p), "password %q should verify", p)
		assert.False(t, hasher.Verify(hash, p+"x"), "password %q+x should not verify", p)
	}

	t.Run("malformed hash is a mismatch", func(t *testing.T) {
		assert.False(t, hasher.Verify("not-a-valid-hash", "secret1"))
		assert.False(t, hasher.Verify("", "secret1"))
	})

	t.Run("empty candidate is a mismatch", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		require.NoError(t, err)
		assert.False(t, hasher.Verify(hash, ""))
	})
}

func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	hasher := password.NewBcryptHasher(100)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestIsValidationError_OtherErrors(t *testing.T) {
	assert.False(t, password.IsValidationError(nil))
	assert.False(t, password.IsValidationError(assert.AnError))
}
