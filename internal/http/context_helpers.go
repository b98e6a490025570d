package httpx

import (
	"context"

	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
)

// sessionKey is an unexported context key type for the authenticated session.
type sessionKey struct{}

// SetSessionInContext returns a context carrying the authenticated session.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the authenticated session, or nil when the
// request is unauthenticated.
func SessionFromContext(ctx context.Context) *domainauth.Session {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok {
		return session
	}
	return nil
}
