package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia-sekali")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := CheckPassword("rahasia-sekali", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("salah", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("sama")
	require.NoError(t, err)
	h2, err := HashPassword("sama")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestCheckPasswordRejectsGarbage(t *testing.T) {
	_, err := CheckPassword("x", "not-a-hash")
	assert.Error(t, err)

	_, err = CheckPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
	assert.Error(t, err)
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.False(t, NeedsRehash(hash))
	assert.True(t, NeedsRehash("$argon2id$v=19$m=4096,t=3,p=2$c2FsdA$aGFzaA"))
	assert.True(t, NeedsRehash("garbage"))
}
