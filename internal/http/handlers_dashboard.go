package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/devseed"
	"github.com/vendosaas/vendo/internal/domain/nav"
	apperrors "github.com/vendosaas/vendo/internal/errors"
)

// NavigationServiceInterface defines the navigation operations the HTTP layer needs.
type NavigationServiceInterface interface {
	State(ctx context.Context, sess domainauth.Session) (nav.State, error)
	SelectSection(ctx context.Context, sess domainauth.Session, id nav.SectionID) (nav.State, error)
	ToggleSubMenu(ctx context.Context, sess domainauth.Session) (nav.State, error)
}

// DashboardHandlers provides HTTP handlers for dashboard navigation and
// section rendering. All handlers run behind RequireAuth.
type DashboardHandlers struct {
	Nav        NavigationServiceInterface
	Currencies CurrencyServiceInterface
	Catalog    *devseed.Catalog
	Logger     *slog.Logger
}

func (h *DashboardHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// State returns the session's navigation state together with the role's menu.
// GET /dashboard/state.
func (h *DashboardHandlers) State(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	state, err := h.Nav.State(r.Context(), *session)
	if err != nil {
		h.writeNavError(w, r, err)
		return
	}
	h.writeState(w, session, state)
}

type selectSectionRequest struct {
	Section string `json:"section"`
}

// SelectSection applies a section selection. Ids outside the role's menu set
// leave the state unchanged and still return 200: the machine is total.
// POST /dashboard/section.
func (h *DashboardHandlers) SelectSection(w http.ResponseWriter, r *http.Request) {
	var req selectSectionRequest
	if !decodeForm(w, r, &req, func(form formReader) {
		req.Section = form("section")
	}) {
		return
	}

	session := SessionFromContext(r.Context())
	state, err := h.Nav.SelectSection(r.Context(), *session, nav.SectionID(req.Section))
	if err != nil {
		h.writeNavError(w, r, err)
		return
	}
	h.writeState(w, session, state)
}

// ToggleSubMenu flips the sub-menu expansion flag.
// POST /dashboard/submenu.
func (h *DashboardHandlers) ToggleSubMenu(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	state, err := h.Nav.ToggleSubMenu(r.Context(), *session)
	if err != nil {
		h.writeNavError(w, r, err)
		return
	}
	h.writeState(w, session, state)
}

// Section renders one section's mock dataset with prices formatted in the
// session currency.
// GET /dashboard/sections/{id}.
func (h *DashboardHandlers) Section(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	id := nav.SectionID(r.PathValue("id"))

	menu, ok := nav.MenuFor(session.Role)
	if !ok || !menuHas(menu, id) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "unknown_section",
			Err:     apperrors.NotFoundf("no section %q for role %s", id, session.Role),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"section": id,
		"content": h.sectionContent(session, id),
	})
}

// sectionContent builds the payload for a section. Amounts enter as USD and
// leave formatted; nothing is stored converted.
func (h *DashboardHandlers) sectionContent(session *domainauth.Session, id nav.SectionID) any {
	currency := h.Currencies.Current(session.ID)

	switch id {
	case nav.SectionSubscriptions, nav.SectionMySubscriptions:
		return h.Catalog.Subscriptions(currency)

	case nav.SectionBilling, nav.SectionBillingHistory, nav.SectionMyBilling:
		return h.Catalog.Invoices(currency)

	case nav.SectionMarketplace, nav.SectionOfferingPlans, nav.SectionManageSoftware:
		return h.Catalog.Listings(currency)

	case nav.SectionProfile, nav.SectionMyProfile, nav.SectionSettings:
		return map[string]any{
			"display_name": session.DisplayName,
			"email":        session.Email,
			"avatar_label": session.AvatarLabel,
			"role":         session.Role,
		}

	case nav.SectionSubscriberList:
		return map[string]any{
			"subscribers": len(h.Catalog.Subscriptions(currency)),
		}

	case nav.SectionPlatformPlan:
		return map[string]any{
			"plan":  "Platform Standard",
			"price": h.Currencies.Format(session.ID, 199.00),
		}

	default: // dashboard
		subs := h.Catalog.Subscriptions(currency)
		var totalUSD float64
		for _, s := range subs {
			totalUSD += s.PriceUSD
		}
		return map[string]any{
			"active_subscriptions": len(subs),
			"monthly_spend":        h.Currencies.Format(session.ID, totalUSD),
		}
	}
}

func (h *DashboardHandlers) writeState(w http.ResponseWriter, session *domainauth.Session, state nav.State) {
	menu, _ := nav.MenuFor(session.Role)
	WriteJSON(w, http.StatusOK, map[string]any{
		"navigation": state,
		"menu":       menu,
		"currency":   h.Currencies.Current(session.ID),
	})
}

func (h *DashboardHandlers) writeNavError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().ErrorContext(r.Context(), "navigation state unavailable", "error", err)
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "navigation_unavailable",
		Err:     err,
	})
}

func menuHas(menu nav.MenuSet, id nav.SectionID) bool {
	for _, s := range menu.Top {
		if s == id {
			return true
		}
	}
	for _, s := range menu.Nested {
		if s == id {
			return true
		}
	}
	return false
}
