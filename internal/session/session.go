// Package session holds the signed-in user's context. A Session is passed
// explicitly to every inventory, upload and share operation; ending it makes
// late results from those operations void.
package session

import (
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/identity"
	"github.com/google/uuid"
)

// Session is one sign-in of one user. It is safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	Identity  identity.UserIdentity
	Namespace string
	StartedAt time.Time

	ended atomic.Bool
}

// New starts a session for u. It fails with common.ErrAuth when no namespace
// can be derived from u.
func New(u identity.UserIdentity) (*Session, error) {
	ns, err := identity.Namespace(u)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        uuid.New(),
		Identity:  u,
		Namespace: ns,
		StartedAt: time.Now().UTC(),
	}, nil
}

// End marks the session as finished. It is idempotent.
func (s *Session) End() {
	if s != nil {
		s.ended.Store(true)
	}
}

// Active reports whether s is non-nil and has not been ended.
func (s *Session) Active() bool {
	return s != nil && !s.ended.Load()
}

// Require returns common.ErrNoSession unless s is active.
func Require(s *Session) error {
	if !s.Active() {
		return common.ErrNoSession
	}
	return nil
}
