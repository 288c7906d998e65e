// Package auth carries the authenticated caller through a request context.
package auth

import "context"

type contextKey struct{}

// Principal is the caller identified by a verified access token.
type Principal struct {
	UserID   string
	Username string
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal or nil for anonymous requests.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(contextKey{}).(*Principal)
	return p
}

// UserID returns the caller's id, or "" when anonymous.
func UserID(ctx context.Context) string {
	if p := FromContext(ctx); p != nil {
		return p.UserID
	}
	return ""
}
