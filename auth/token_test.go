package auth

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	t.Run("token and hash are consistent", func(t *testing.T) {
		token, hash, err := NewToken()
		require.NoError(t, err)

		assert.NotEmpty(t, token)
		assert.Equal(t, HashToken(token), hash)
		assert.NotEqual(t, token, hash)
	})

	t.Run("token carries the full entropy", func(t *testing.T) {
		token, _, err := NewToken()
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		assert.Len(t, raw, tokenBytes)
	})

	t.Run("consecutive tokens differ", func(t *testing.T) {
		a, _, err := NewToken()
		require.NoError(t, err)
		b, _, err := NewToken()
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})
}

func TestHashToken(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, HashToken("abc"), HashToken("abc"))
		assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	})

	t.Run("hex encoded sha-256", func(t *testing.T) {
		hash := HashToken("abc")
		assert.Len(t, hash, 64)
		_, err := hex.DecodeString(hash)
		assert.NoError(t, err)
	})
}
