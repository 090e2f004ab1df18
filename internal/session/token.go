package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/identity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that are malformed, expired or
// signed with a different key.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the JWT payload persisting a session between runs.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// TokenCodec signs and verifies session tokens with HS256.
type TokenCodec struct {
	key      []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenCodec returns a codec issuing tokens valid for validity.
func NewTokenCodec(key []byte, validity time.Duration) *TokenCodec {
	return &TokenCodec{key: key, validity: validity, now: time.Now}
}

// Issue encodes s as a signed token.
func (c *TokenCodec) Issue(s *Session) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID.String(),
			Subject:   s.Identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
		Email:   s.Identity.Email,
		Name:    s.Identity.Name,
		Picture: s.Identity.PictureURL,
	})

	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and rebuilds the session it describes. Any
// verification failure matches ErrInvalidToken.
func (c *TokenCodec) Parse(tokenString string) (*Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad session id: %w", ErrInvalidToken, err)
	}

	s, err := New(identity.UserIdentity{
		ID:         claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
		PictureURL: claims.Picture,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	s.ID = id
	if claims.IssuedAt != nil {
		s.StartedAt = claims.IssuedAt.UTC()
	}
	return s, nil
}
