package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionToken(t *testing.T) {
	a, err := NewSessionToken()
	require.NoError(t, err)
	b, err := NewSessionToken()
	require.NoError(t, err)

	assert.Len(t, a, 64) // 32 bytes hex-encoded
	assert.NotEqual(t, a, b)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("password1234")
	require.NoError(t, err)

	assert.True(t, CompareHashAndPassword(hash, "password1234"))
	assert.False(t, CompareHashAndPassword(hash, "password123"))
}
