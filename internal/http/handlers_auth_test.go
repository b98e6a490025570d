package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/domain/money"
	apperrors "github.com/vendosaas/vendo/internal/errors"
	"github.com/vendosaas/vendo/internal/service"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func sessionCookieFrom(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_Login_Success(t *testing.T) {
	session := *activeCustomerSession()
	currencies := newStubCurrencies(money.USD)
	handlers := &AuthHandlers{
		Svc: &fakeSessions{
			LoginFn: func(_ context.Context, in service.LoginInput) (*service.LoginResult, error) {
				assert.Equal(t, "jane@example.com", in.Email)
				return &service.LoginResult{Session: session, RedirectTo: "/dashboard"}, nil
			},
		},
		Currencies: currencies,
	}

	w := postJSON(t, handlers.Login, "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "/dashboard", body["redirect_to"])
	assert.Equal(t, "customer", body["role"])

	cookie := sessionCookieFrom(w)
	require.NotNil(t, cookie)
	assert.Equal(t, session.ID, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Positive(t, cookie.MaxAge)

	// Login kicks off the background currency resolution.
	assert.Equal(t, []string{session.ID}, currencies.resolvedIDs())
}

func TestAuthHandlers_Login_FormEncoded(t *testing.T) {
	handlers := &AuthHandlers{
		Svc: &fakeSessions{
			LoginFn: func(_ context.Context, in service.LoginInput) (*service.LoginResult, error) {
				return &service.LoginResult{Session: *activeCustomerSession(), RedirectTo: "/dashboard"}, nil
			},
		},
		Currencies: newStubCurrencies(money.USD),
	}

	form := url.Values{"email": {"jane@example.com"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handlers.Login(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandlers_Login_ValidationErrors(t *testing.T) {
	handlers := &AuthHandlers{
		Svc: &fakeSessions{
			LoginFn: func(context.Context, service.LoginInput) (*service.LoginResult, error) {
				t.Fatal("Login must not be called on validation failure")
				return nil, nil
			},
		},
	}

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{name: "missing email", body: map[string]string{"password": "secret1"}, field: "email"},
		{name: "malformed email", body: map[string]string{"email": "nope", "password": "secret1"}, field: "email"},
		{name: "short password", body: map[string]string{"email": "a@b.co", "password": "12345"}, field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, handlers.Login, "/auth/login", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, "validation", body["error"])
			fieldErrors, ok := body["errors"].(map[string]any)
			require.True(t, ok)
			assert.Contains(t, fieldErrors, tt.field)
		})
	}
}

func TestAuthHandlers_Login_Pending(t *testing.T) {
	handlers := &AuthHandlers{
		Svc: &fakeSessions{
			LoginFn: func(context.Context, service.LoginInput) (*service.LoginResult, error) {
				return nil, service.ErrLoginPending
			},
		},
	}

	w := postJSON(t, handlers.Login, "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "pending", decodeBody(t, w)["status"])
	assert.Nil(t, sessionCookieFrom(w), "a pending duplicate must not set a cookie")
}

func TestAuthHandlers_Login_ProviderFailure(t *testing.T) {
	handlers := &AuthHandlers{
		Svc: &fakeSessions{
			LoginFn: func(context.Context, service.LoginInput) (*service.LoginResult, error) {
				return nil, errors.New("authenticate: backend down")
			},
		},
	}

	w := postJSON(t, handlers.Login, "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "login_failed", decodeBody(t, w)["error"])
}

func TestAuthHandlers_Login_MalformedJSON(t *testing.T) {
	handlers := &AuthHandlers{Svc: &fakeSessions{}}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handlers.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_Register(t *testing.T) {
	valid := map[string]string{
		"display_name":     "Jane Doe",
		"email":            "jane@example.com",
		"password":         "secret1",
		"password_confirm": "secret1",
	}

	t.Run("success", func(t *testing.T) {
		handlers := &AuthHandlers{
			Svc: &fakeSessions{
				RegisterFn: func(_ context.Context, in service.RegisterInput) error {
					assert.Equal(t, "Jane Doe", in.DisplayName)
					return nil
				},
			},
		}
		w := postJSON(t, handlers.Register, "/auth/register", valid)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "registered", decodeBody(t, w)["status"])
	})

	t.Run("email taken", func(t *testing.T) {
		handlers := &AuthHandlers{
			Svc: &fakeSessions{
				RegisterFn: func(context.Context, service.RegisterInput) error {
					return apperrors.Conflict("An account with this email already exists.")
				},
			},
		}
		w := postJSON(t, handlers.Register, "/auth/register", valid)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "email_taken", decodeBody(t, w)["error"])
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		handlers := &AuthHandlers{Svc: &fakeSessions{}}
		body := map[string]string{
			"display_name":     "Jane Doe",
			"email":            "jane@example.com",
			"password":         "secret1",
			"password_confirm": "secret2",
		}
		w := postJSON(t, handlers.Register, "/auth/register", body)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		fieldErrors := decodeBody(t, w)["errors"].(map[string]any)
		assert.Contains(t, fieldErrors, "password_confirm")
	})

	t.Run("missing display name", func(t *testing.T) {
		handlers := &AuthHandlers{Svc: &fakeSessions{}}
		body := map[string]string{
			"email":            "jane@example.com",
			"password":         "secret1",
			"password_confirm": "secret1",
		}
		w := postJSON(t, handlers.Register, "/auth/register", body)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		fieldErrors := decodeBody(t, w)["errors"].(map[string]any)
		assert.Contains(t, fieldErrors, "display_name")
	})
}

func TestAuthHandlers_Logout(t *testing.T) {
	t.Run("no cookie", func(t *testing.T) {
		handlers := &AuthHandlers{Svc: &fakeSessions{}}
		w := postJSON(t, handlers.Logout, "/auth/logout", map[string]bool{"confirmed": true})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "unchanged", decodeBody(t, w)["status"])
	})

	t.Run("declined confirmation leaves session", func(t *testing.T) {
		currencies := newStubCurrencies(money.USD)
		handlers := &AuthHandlers{
			Svc: &fakeSessions{
				LogoutFn: func(_ context.Context, sessionID string, confirmed bool) (bool, error) {
					assert.Equal(t, "sess-customer", sessionID)
					assert.False(t, confirmed)
					return false, nil
				},
			},
			Currencies: currencies,
		}

		raw, _ := json.Marshal(map[string]bool{"confirmed": false})
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-customer"})
		w := httptest.NewRecorder()
		handlers.Logout(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "unchanged", decodeBody(t, w)["status"])
		assert.Empty(t, currencies.forgottenIDs())
		assert.Nil(t, sessionCookieFrom(w), "cookie must survive a declined logout")
	})

	t.Run("confirmed logout", func(t *testing.T) {
		currencies := newStubCurrencies(money.USD)
		handlers := &AuthHandlers{
			Svc: &fakeSessions{
				LogoutFn: func(_ context.Context, sessionID string, confirmed bool) (bool, error) {
					assert.True(t, confirmed)
					return true, nil
				},
			},
			Currencies: currencies,
		}

		raw, _ := json.Marshal(map[string]bool{"confirmed": true})
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-customer"})
		w := httptest.NewRecorder()
		handlers.Logout(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "logged_out", body["status"])
		assert.Equal(t, "/login", body["redirect_to"])
		assert.Equal(t, []string{"sess-customer"}, currencies.forgottenIDs())

		cookie := sessionCookieFrom(w)
		require.NotNil(t, cookie)
		assert.Negative(t, cookie.MaxAge, "session cookie must be expired")
	})
}

func TestAuthHandlers_Status(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		handlers := &AuthHandlers{Svc: &fakeSessions{}}
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		w := httptest.NewRecorder()
		handlers.Status(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["authenticated"])
	})

	t.Run("invalid session clears cookie", func(t *testing.T) {
		handlers := &AuthHandlers{
			Svc: &fakeSessions{
				GetSessionFn: func(context.Context, string) (*domainauth.Session, error) {
					return nil, apperrors.NotFound("session expired")
				},
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale"})
		w := httptest.NewRecorder()
		handlers.Status(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["authenticated"])

		cookie := sessionCookieFrom(w)
		require.NotNil(t, cookie)
		assert.Negative(t, cookie.MaxAge)
	})

	t.Run("authenticated", func(t *testing.T) {
		session := activeCustomerSession()
		handlers := &AuthHandlers{
			Svc: &fakeSessions{
				GetSessionFn: func(_ context.Context, id string) (*domainauth.Session, error) {
					assert.Equal(t, session.ID, id)
					return session, nil
				},
			},
			Currencies: newStubCurrencies(money.ByCountry("JP")),
		}

		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session.ID})
		w := httptest.NewRecorder()
		handlers.Status(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["authenticated"])

		user := body["user"].(map[string]any)
		assert.Equal(t, "Jane Doe", user["display_name"])
		assert.Equal(t, "JD", user["avatar_label"])
		assert.Equal(t, "customer", user["role"])

		currency := body["currency"].(map[string]any)
		assert.Equal(t, "JPY", currency["code"])
	})
}

func TestSetSessionCookie_SecureDetection(t *testing.T) {
	handlers := &AuthHandlers{}
	session := *activeCustomerSession()
	session.ExpiresAt = time.Now().Add(time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	handlers.setSessionCookie(w, req, session)

	cookie := sessionCookieFrom(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}
