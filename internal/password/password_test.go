package password_test

import (
	"testing"

	"github.com/mdouchement/donezo/internal/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("password42")
	require.NoError(t, err)

	assert.True(t, password.Verify("password42", hash))
	assert.False(t, password.Verify("password43", hash))
	assert.False(t, password.Verify("", hash))
}

func TestHashIsSalted(t *testing.T) {
	hash1, err := password.Hash("password42")
	require.NoError(t, err)
	hash2, err := password.Hash("password42")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, password.Verify("password42", hash1))
	assert.True(t, password.Verify("password42", hash2))
}

func TestVerifyMalformedHash(t *testing.T) {
	assert.False(t, password.Verify("password42", ""))
	assert.False(t, password.Verify("password42", "not-an-argon2-blob"))
}
