package ports

import (
	"context"

	"github.com/vendosaas/vendo/internal/domain/nav"
)

// NavStore persists navigation state keyed by session id. State is discarded
// together with the session on confirmed logout, so a fresh login always
// starts at the default section.
type NavStore interface {
	Save(ctx context.Context, sessionID string, state nav.State) error
	Get(ctx context.Context, sessionID string) (nav.State, error)
	Delete(ctx context.Context, sessionID string) error
}
