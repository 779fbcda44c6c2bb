// Package password derives and verifies the one-way hash of the shared login
// secret. The hash is computed once at process start and only ever kept in
// memory.
package password

import (
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
)

// Hash derives a salted, memory-hard hash of the given secret.
// A fresh random salt is generated on every call so two hashes of the same
// secret never match.
func Hash(secret string) (string, error) {
	hash, err := argon2.GenerateFromPasswordString(secret, argon2.Default)
	return hash, errors.Wrap(err, "could not hash the secret")
}

// Verify returns true if the secret matches the given hash.
// It returns false on a malformed hash or a mismatch, never an error.
// The underlying comparison is constant-time.
func Verify(secret, hash string) bool {
	return argon2.CompareHashAndPasswordString(hash, secret) == nil
}
