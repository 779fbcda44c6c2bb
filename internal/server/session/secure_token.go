package session

import (
	"crypto/rand"
	"math/big"
)

// TokenLength is the length of the opaque values used for both session ids
// and API token values. A 62-symbol alphabet over 64 characters leaves
// collisions to the unique index of the store.
const TokenLength = 64

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// SecureToken generates a random token of the given length, drawn uniformly
// from letters and digits with a cryptographically secure source.
func SecureToken(length int) string {
	token := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // only fails when the system source is unreadable
		}
		token[i] = alphabet[int(n.Int64())]
	}

	return string(token)
}
