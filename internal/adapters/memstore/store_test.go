package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendosaas/vendo/internal/clock"
	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/domain/nav"
)

func TestSessionStore_SaveGetDelete(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	store := NewSessionStore(clk)
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "sess-1",
		UserID:    "jane@example.com",
		Role:      domainauth.RoleCustomer,
		ExpiresAt: clk.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Save_Rejections(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Now())
	store := NewSessionStore(clk)
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{ExpiresAt: clk.Now().Add(time.Hour)})
	assert.Error(t, err, "empty id")

	err = store.Save(ctx, domainauth.Session{ID: "sess-1", ExpiresAt: clk.Now().Add(-time.Minute)})
	assert.Error(t, err, "already expired")
}

func TestSessionStore_Get_ExpiresLazily(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Now())
	store := NewSessionStore(clk)
	ctx := context.Background()

	sess := domainauth.Session{ID: "sess-1", ExpiresAt: clk.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))

	clk.Advance(2 * time.Hour)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Get_MissingAndEmpty(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(clock.System{})
	ctx := context.Background()

	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestNavStore_SaveGetDelete(t *testing.T) {
	t.Parallel()

	store := NewNavStore()
	ctx := context.Background()

	state := nav.State{Role: domainauth.RoleTenant, ActiveSection: nav.SectionMyBilling, SubMenuExpanded: true}
	require.NoError(t, store.Save(ctx, "sess-1", state))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNavStore_EmptyID(t *testing.T) {
	t.Parallel()

	store := NewNavStore()
	assert.Error(t, store.Save(context.Background(), "", nav.State{}))
}
