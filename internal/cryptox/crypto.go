// Package cryptox derives and generates the key material used to sign the
// persisted session token.
package cryptox

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// SessionKeySize is the length in bytes of keys returned by DeriveSessionKey.
const SessionKeySize = 32

// DeriveSessionKey stretches secret with Argon2id over salt into a
// SessionKeySize-byte HMAC key. Same inputs always yield the same key.
func DeriveSessionKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, SessionKeySize)
}

// RandomBytes returns n bytes from crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return b, nil
}

// Wipe zeroes b. A nil slice is left alone.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
