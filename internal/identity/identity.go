// Package identity signs the user in with an external identity provider and
// derives the storage namespace that scopes everything they own.
package identity

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/gophdrive/internal/common"
)

// UserIdentity is what the provider tells us about the signed-in user.
// It does not change for the lifetime of a sign-in.
type UserIdentity struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	PictureURL string `json:"picture,omitempty"`
}

// DisplayName is the name shown to recipients of shared links.
func (u UserIdentity) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Provider runs an interactive sign-in and returns the resulting identity.
// Failures match common.ErrAuth.
type Provider interface {
	SignIn(ctx context.Context) (UserIdentity, error)
}

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Namespace derives the per-user key segment from u. The provider subject is
// preferred since display names are neither unique nor stable; the name is
// used only when the subject is empty. Characters outside [A-Za-z0-9._-] are
// replaced with "_".
func Namespace(u UserIdentity) (string, error) {
	if id := strings.TrimSpace(u.ID); id != "" {
		return unsafeChars.ReplaceAllString(id, "_"), nil
	}

	if name := strings.TrimSpace(u.Name); name != "" {
		name = whitespace.ReplaceAllString(name, "_")
		return unsafeChars.ReplaceAllString(name, "_"), nil
	}

	return "", fmt.Errorf("%w: identity has neither subject nor name", common.ErrAuth)
}
