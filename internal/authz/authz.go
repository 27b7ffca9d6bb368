// Package authz decides whether the authenticated client may act on a
// resource, and provides declarative middleware applying that decision per
// route.
package authz

import (
	"context"
	"errors"
)

var (
	// ErrUnauthorized is returned when no client is authenticated.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the authenticated client does not own
	// the requested resource or lacks the required privilege.
	ErrForbidden = errors.New("access forbidden")
)

// Principal is the authenticated client making a request.
type Principal struct {
	ClientID int64
	Admin    bool
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored in ctx, or nil.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	if p == nil || p.ClientID <= 0 {
		return nil
	}
	return p
}

// Authorize allows p to act on a resource owned by ownerID.
func Authorize(p *Principal, ownerID int64) error {
	if p == nil || p.ClientID <= 0 {
		return ErrUnauthorized
	}
	if p.ClientID != ownerID {
		return ErrForbidden
	}
	return nil
}

// RequireAdmin allows only admin principals.
func RequireAdmin(p *Principal) error {
	if p == nil || p.ClientID <= 0 {
		return ErrUnauthorized
	}
	if !p.Admin {
		return ErrForbidden
	}
	return nil
}
