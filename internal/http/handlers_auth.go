package httpx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/domain/money"
	apperrors "github.com/vendosaas/vendo/internal/errors"
	"github.com/vendosaas/vendo/internal/http/validation"
	"github.com/vendosaas/vendo/internal/service"
)

// sessionCookieName is the cookie carrying the opaque session id.
const sessionCookieName = "session_id"

// currencyResolveDeadline bounds the background currency lookup fired at
// login.
const currencyResolveDeadline = 5 * time.Second

// SessionServiceInterface defines the session operations the HTTP layer needs.
type SessionServiceInterface interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	Register(ctx context.Context, in service.RegisterInput) error
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string, confirmed bool) (bool, error)
}

// CurrencyServiceInterface defines the currency operations the HTTP layer needs.
type CurrencyServiceInterface interface {
	Current(sessionID string) money.Currency
	Format(sessionID string, usd float64) string
	ResolveAsync(sessionID string, deadline time.Duration)
	Forget(sessionID string)
}

// AuthHandlers provides HTTP handlers for the session lifecycle.
type AuthHandlers struct {
	Svc          SessionServiceInterface
	Currencies   CurrencyServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles the login submission.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeForm(w, r, &req, func(form formReader) {
		req.Email = form("email")
		req.Password = form("password")
	}) {
		return
	}

	fieldErrors := validation.New().
		Validate("email", req.Email, validation.Email("Email")).
		Validate("password", req.Password,
			validation.RequiredRange("Password", service.PasswordMinLength, 128)).
		Errors()
	if len(fieldErrors) > 0 {
		WriteFieldErrors(w, fieldErrors)
		return
	}

	result, err := h.Svc.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeLoginError(w, r, err)
		return
	}

	h.setSessionCookie(w, r, result.Session)

	// Fire the one-shot currency lookup; rendering shows USD until it lands.
	if h.Currencies != nil {
		h.Currencies.ResolveAsync(result.Session.ID, currencyResolveDeadline)
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"redirect_to": result.RedirectTo,
		"role":        result.Session.Role,
	})
}

func (h *AuthHandlers) writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.IsPending(err):
		// Duplicate submission while pending: ignored, no state change.
		WriteJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
	case apperrors.IsValidation(err):
		WriteFieldErrors(w, map[string]string{apperrors.GetField(err): err.Error()})
	default:
		h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     err,
		})
	}
}

type registerRequest struct {
	DisplayName     string `json:"display_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// Register handles the registration submission. Acceptance is simulated;
// the value of the endpoint is the canonical validation policy.
// POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeForm(w, r, &req, func(form formReader) {
		req.DisplayName = form("display_name")
		req.Email = form("email")
		req.Password = form("password")
		req.PasswordConfirm = form("password_confirm")
	}) {
		return
	}

	fieldErrors := validation.New().
		Validate("display_name", req.DisplayName, validation.Required("Name", 100)).
		Validate("email", req.Email, validation.Email("Email")).
		Validate("password", req.Password,
			validation.RequiredRange("Password", service.PasswordMinLength, 128)).
		Validate("password_confirm", req.PasswordConfirm,
			validation.Matches(req.Password, "Passwords do not match.")).
		Errors()
	if len(fieldErrors) > 0 {
		WriteFieldErrors(w, fieldErrors)
		return
	}

	err := h.Svc.Register(r.Context(), service.RegisterInput{
		DisplayName:     req.DisplayName,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			WriteFieldErrors(w, map[string]string{apperrors.GetField(err): err.Error()})
		case apperrors.IsConflict(err):
			WriteError(w, ErrorParams{
				Code:    http.StatusConflict,
				ErrCode: "email_taken",
				Err:     err,
			})
		default:
			h.logger().ErrorContext(r.Context(), "registration failed", "error", err)
			WriteError(w, ErrorParams{
				Code:    http.StatusInternalServerError,
				ErrCode: "registration_failed",
				Err:     err,
			})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

type logoutRequest struct {
	Confirmed bool `json:"confirmed"`
}

// Logout ends the session, but only with explicit confirmation; a declined
// confirmation leaves the session untouched.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if !decodeForm(w, r, &req, func(form formReader) {
		req.Confirmed = strings.EqualFold(form("confirmed"), "true")
	}) {
		return
	}

	sessionCookie, cookieErr := r.Cookie(sessionCookieName)
	if cookieErr != nil {
		// No session to end; nothing changes.
		WriteJSON(w, http.StatusOK, map[string]string{"status": "unchanged"})
		return
	}

	ended, err := h.Svc.Logout(r.Context(), sessionCookie.Value, req.Confirmed)
	if err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "logout_failed",
			Err:     err,
		})
		return
	}
	if !ended {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "unchanged"})
		return
	}

	if h.Currencies != nil {
		h.Currencies.Forget(sessionCookie.Value)
	}
	h.clearCookie(w, r, sessionCookieName)

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "logged_out",
		"redirect_to": "/login",
	})
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie
		h.clearCookie(w, r, sessionCookieName)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	resp := map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":           session.UserID,
			"display_name": session.DisplayName,
			"email":        session.Email,
			"avatar_label": session.AvatarLabel,
			"role":         session.Role,
		},
		"expires_at": session.ExpiresAt,
	}
	if h.Currencies != nil {
		resp["currency"] = h.Currencies.Current(session.ID)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// formReader reads one form value by name.
type formReader func(name string) string

// decodeForm fills dst from a JSON body, or via fill from form values when
// the submission is a regular form post. Returns false when the body was
// unreadable (error response already written).
func decodeForm(w http.ResponseWriter, r *http.Request, dst any, fill func(form formReader)) bool {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		return DecodeJSON(w, r, dst)
	}
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_form",
			Err:     fmt.Errorf("parse form: %w", err),
		})
		return false
	}
	fill(r.FormValue)
	return true
}
