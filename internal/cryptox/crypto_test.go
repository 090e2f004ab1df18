package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSessionKey_Deterministic(t *testing.T) {
	secret := []byte("session-secret")
	salt := []byte("fixed-salt")

	key1 := DeriveSessionKey(secret, salt)
	key2 := DeriveSessionKey(secret, salt)

	assert.Len(t, key1, SessionKeySize)
	assert.True(t, bytes.Equal(key1, key2), "same inputs must give the same key")
}

func TestDeriveSessionKey_DifferentInputs(t *testing.T) {
	secret := []byte("session-secret")

	k1 := DeriveSessionKey(secret, []byte("salt-1"))
	k2 := DeriveSessionKey(secret, []byte("salt-2"))
	k3 := DeriveSessionKey([]byte("other-secret"), []byte("salt-1"))

	assert.NotEqual(t, k1, k2, "different salts must give different keys")
	assert.NotEqual(t, k1, k3, "different secrets must give different keys")
}

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(16)
	require.NoError(t, err)
	b, err := RandomBytes(16)
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestWipe(t *testing.T) {
	b := []byte("secretKey")
	Wipe(b)
	assert.Equal(t, make([]byte, 9), b)

	assert.NotPanics(t, func() { Wipe(nil) })
}
