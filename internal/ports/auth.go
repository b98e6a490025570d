package ports

// Package ports defines interfaces (hexagonal ports) for session, navigation,
// and currency behavior. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"

	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
)

// Credentials carries a login submission. Both fields are required and must
// already be well-formed when they reach a provider.
type Credentials struct {
	Email    string
	Password string
}

// CredentialProvider turns a credential pair into an authenticated identity.
// The shipped implementation is simulated: it accepts any well-formed pair
// after a fixed latency. Implementations must honor ctx cancellation.
type CredentialProvider interface {
	Authenticate(ctx context.Context, creds Credentials) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps provider groups to dashboard roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
