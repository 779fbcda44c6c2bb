package session_test

import (
	"testing"

	"github.com/mdouchement/donezo/internal/server/session"
	"github.com/stretchr/testify/assert"
)

func TestSecureToken(t *testing.T) {
	token := session.SecureToken(session.TokenLength)
	assert.Regexp(t, `^[A-Za-z0-9]{64}$`, token)

	assert.Len(t, session.SecureToken(8), 8)
}

func TestSecureTokenUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token := session.SecureToken(session.TokenLength)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
