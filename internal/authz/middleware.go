package authz

import (
	"context"
	"net/http"
)

// OwnerResolver resolves the resource a request targets and the ID of the
// client that owns it. The resource may be nil when the owner is taken
// directly from the path.
type OwnerResolver func(r *http.Request) (ownerID int64, resource any, err error)

// ErrorWriter renders an authorization or resolution error.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

type resourceKey struct{}

// Middleware builds route guards that share one error renderer.
type Middleware struct {
	writeError ErrorWriter
}

// NewMiddleware creates a Middleware rendering failures with writeError.
func NewMiddleware(writeError ErrorWriter) *Middleware {
	return &Middleware{writeError: writeError}
}

// RequirePrincipal rejects anonymous requests.
func (m *Middleware) RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromContext(r.Context()) == nil {
			m.writeError(w, r, ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from non-admin principals.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := RequireAdmin(PrincipalFromContext(r.Context())); err != nil {
			m.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwner resolves the target resource and lets the request through
// only when the authenticated principal owns it. The resolved resource is
// available to the handler through ResourceFromContext.
func (m *Middleware) RequireOwner(resolve OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				m.writeError(w, r, ErrUnauthorized)
				return
			}

			ownerID, resource, err := resolve(r)
			if err != nil {
				m.writeError(w, r, err)
				return
			}

			if err := Authorize(principal, ownerID); err != nil {
				m.writeError(w, r, err)
				return
			}

			ctx := r.Context()
			if resource != nil {
				ctx = context.WithValue(ctx, resourceKey{}, resource)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ResourceFromContext returns the resource resolved by RequireOwner.
func ResourceFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(resourceKey{}).(T)
	return v, ok
}
