package httpx

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/domain/money"
	"github.com/vendosaas/vendo/internal/service"
)

// fakeSessions implements SessionServiceInterface with overridable behavior
// per test.
type fakeSessions struct {
	LoginFn      func(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	RegisterFn   func(ctx context.Context, in service.RegisterInput) error
	GetSessionFn func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	LogoutFn     func(ctx context.Context, sessionID string, confirmed bool) (bool, error)
}

func (f *fakeSessions) Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error) {
	return f.LoginFn(ctx, in)
}

func (f *fakeSessions) Register(ctx context.Context, in service.RegisterInput) error {
	return f.RegisterFn(ctx, in)
}

func (f *fakeSessions) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	return f.GetSessionFn(ctx, sessionID)
}

func (f *fakeSessions) Logout(ctx context.Context, sessionID string, confirmed bool) (bool, error) {
	return f.LogoutFn(ctx, sessionID, confirmed)
}

// stubCurrencies implements CurrencyServiceInterface with a fixed currency
// and records of the lifecycle calls.
type stubCurrencies struct {
	mu        sync.Mutex
	currency  money.Currency
	resolved  []string
	forgotten []string
}

func newStubCurrencies(c money.Currency) *stubCurrencies {
	return &stubCurrencies{currency: c}
}

func (s *stubCurrencies) Current(string) money.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

func (s *stubCurrencies) Format(_ string, usd float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return money.Format(s.currency, usd)
}

func (s *stubCurrencies) ResolveAsync(sessionID string, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved = append(s.resolved, sessionID)
}

func (s *stubCurrencies) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forgotten = append(s.forgotten, sessionID)
}

func (s *stubCurrencies) resolvedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.resolved...)
}

func (s *stubCurrencies) forgottenIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.forgotten...)
}

func activeCustomerSession() *domainauth.Session {
	return &domainauth.Session{
		ID:          "sess-customer",
		UserID:      "jane@example.com",
		DisplayName: "Jane Doe",
		Email:       "jane@example.com",
		AvatarLabel: "JD",
		Role:        domainauth.RoleCustomer,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func activeTenantSession() *domainauth.Session {
	return &domainauth.Session{
		ID:          "sess-tenant",
		UserID:      "ops@vendor.example.com",
		DisplayName: "Ops Team",
		Email:       "ops@vendor.example.com",
		AvatarLabel: "OT",
		Role:        domainauth.RoleTenant,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}
