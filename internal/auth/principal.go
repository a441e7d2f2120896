// Package auth holds the bearer-token primitives: token issuance and
// verification, the user lookup boundary, and the authenticated principal
// carried in a request's context.
package auth

import (
	"context"
	"errors"
	"slices"
)

// ErrUserNotFound is returned by a UserDetailsService when no user has the given username.
var ErrUserNotFound = errors.New("user not found")

// UserRecord is the credential-free view of a user the gate authenticates against.
type UserRecord struct {
	ID          uint64
	Username    string
	Authorities []string
	Enabled     bool
}

// UserDetailsService loads the record for a token subject.
type UserDetailsService interface {
	LoadUserByUsername(ctx context.Context, username string) (*UserRecord, error)
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID      uint64
	Username    string
	Authorities []string
	RemoteAddr  string
}

// HasAuthority reports whether the principal was granted authority.
func (p Principal) HasAuthority(authority string) bool {
	return slices.Contains(p.Authorities, authority)
}

// NewPrincipal builds a principal from a loaded record and caller metadata.
func NewPrincipal(record UserRecord, remoteAddr string) Principal {
	return Principal{
		UserID:      record.ID,
		Username:    record.Username,
		Authorities: slices.Clone(record.Authorities),
		RemoteAddr:  remoteAddr,
	}
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal installed by WithPrincipal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
