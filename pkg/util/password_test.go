package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-battery", hash)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "correct-horse-battery"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
	assert.False(t, VerifyPassword("not-a-hash", "correct-horse-battery"))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	h2, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
