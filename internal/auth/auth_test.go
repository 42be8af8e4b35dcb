package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestJWT_RoundTrip(t *testing.T) {
	tok, err := SignJWT(42, "k", time.Hour)
	require.NoError(t, err)

	id, err := ParseJWT(tok, "k")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestJWT_Rejects(t *testing.T) {
	tok, err := SignJWT(42, "k", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(tok, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := SignJWT(42, "k", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "k")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseJWT("not-a-token", "k")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
