package httpx

import (
	"log/slog"
	"net/http"

	"github.com/vendosaas/vendo/internal/devseed"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions   SessionServiceInterface
	Nav        NavigationServiceInterface
	Currencies CurrencyServiceInterface
	Catalog    *devseed.Catalog

	CookieDomain string
	Logger       *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Sessions,
		Currencies:   services.Currencies,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	dashboardHandlers := &DashboardHandlers{
		Nav:        services.Nav,
		Currencies: services.Currencies,
		Catalog:    services.Catalog,
		Logger:     services.Logger,
	}

	mux.Handle("POST /auth/register", http.HandlerFunc(authHandlers.Register))
	mux.Handle("POST /auth/login", http.HandlerFunc(authHandlers.Login))
	mux.Handle("POST /auth/logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(authHandlers.Status))

	requireAuth := RequireAuth(services.Sessions)
	mux.Handle("GET /dashboard/state", requireAuth(http.HandlerFunc(dashboardHandlers.State)))
	mux.Handle("POST /dashboard/section", requireAuth(http.HandlerFunc(dashboardHandlers.SelectSection)))
	mux.Handle("POST /dashboard/submenu", requireAuth(http.HandlerFunc(dashboardHandlers.ToggleSubMenu)))
	mux.Handle("GET /dashboard/sections/{id}", requireAuth(http.HandlerFunc(dashboardHandlers.Section)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

// healthHandler reports process liveness. There is no backing store to
// check.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
