package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	t.Run("Hash is not the plain password", func(t *testing.T) {
		hash, err := h.Hash("secret")
		require.NoError(t, err)
		assert.NotEqual(t, "secret", hash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
	})

	t.Run("Same password gives different hashes", func(t *testing.T) {
		a, err := h.Hash("secret")
		require.NoError(t, err)
		b, err := h.Hash("secret")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("Invalid cost falls back to default", func(t *testing.T) {
		assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(100).cost)
		assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	})
}
