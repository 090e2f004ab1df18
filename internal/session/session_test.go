package session

import (
	"testing"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesNamespaceAndPrefix(t *testing.T) {
	s, err := New(identity.UserIdentity{ID: "42", Name: "Ada Lovelace"})
	require.NoError(t, err)

	assert.Equal(t, "42", s.Namespace)
	assert.True(t, s.Active())
	assert.NotEmpty(t, s.ID.String())
}

func TestNew_RejectsAnonymousIdentity(t *testing.T) {
	_, err := New(identity.UserIdentity{Email: "a@b.c"})
	require.ErrorIs(t, err, common.ErrAuth)
}

func TestEndAndRequire(t *testing.T) {
	s, err := New(identity.UserIdentity{ID: "42"})
	require.NoError(t, err)
	require.NoError(t, Require(s))

	s.End()
	s.End()
	assert.False(t, s.Active())
	assert.ErrorIs(t, Require(s), common.ErrNoSession)

	var none *Session
	assert.False(t, none.Active())
	none.End()
	assert.ErrorIs(t, Require(none), common.ErrNoSession)
}
