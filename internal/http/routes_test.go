package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendosaas/vendo/internal/adapters/memstore"
	"github.com/vendosaas/vendo/internal/devseed"
	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/domain/money"
	apperrors "github.com/vendosaas/vendo/internal/errors"
	"github.com/vendosaas/vendo/internal/service"
)

func newTestRouter(session *domainauth.Session) http.Handler {
	sessions := &fakeSessions{
		GetSessionFn: func(_ context.Context, id string) (*domainauth.Session, error) {
			if session != nil && id == session.ID {
				return session, nil
			}
			return nil, apperrors.NotFound("no session")
		},
	}

	return NewRouter(RouterServices{
		Sessions:   sessions,
		Nav:        service.NewNavigationService(service.NavigationServiceOptions{Store: memstore.NewNavStore()}),
		Currencies: newStubCurrencies(money.USD),
		Catalog:    devseed.NewCatalog(),
	})
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])

	req = httptest.NewRequest(http.MethodHead, "/healthz", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_DashboardRequiresAuth(t *testing.T) {
	router := newTestRouter(nil)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/dashboard/state"},
		{http.MethodPost, "/dashboard/section"},
		{http.MethodPost, "/dashboard/submenu"},
		{http.MethodGet, "/dashboard/sections/billing"},
	}

	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestRouter_AuthenticatedDashboardState(t *testing.T) {
	session := activeTenantSession()
	router := newTestRouter(session)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/state", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session.ID})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	menu := body["menu"].(map[string]any)
	assert.Len(t, menu["top"], 8)
	assert.Len(t, menu["nested"], 3)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
