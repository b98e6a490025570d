package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vendosaas/vendo/internal/domain/money"
	"github.com/vendosaas/vendo/internal/ports"
)

// CurrencyServiceOptions groups dependencies for CurrencyService.
type CurrencyServiceOptions struct {
	Resolver ports.LocationResolver
	Logger   *slog.Logger // Optional: structured logger
}

// CurrencyService resolves one display currency per session and formats
// USD amounts through it. Resolution is attempted once, deduplicated by a
// singleflight group, and never blocks rendering: until it completes (and
// after any failure) amounts render in USD. Lookup failures are recovered
// silently.
type CurrencyService struct {
	resolver ports.LocationResolver
	logger   *slog.Logger

	sf singleflight.Group

	mu       sync.RWMutex
	resolved map[string]money.Currency
}

// NewCurrencyService constructs a new CurrencyService.
func NewCurrencyService(opts CurrencyServiceOptions) *CurrencyService {
	if opts.Resolver == nil {
		panic("currency service: Resolver is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CurrencyService{
		resolver: opts.Resolver,
		logger:   logger,
		resolved: make(map[string]money.Currency),
	}
}

// Current returns the session's resolved currency, or USD while resolution
// is outstanding or was never attempted.
func (s *CurrencyService) Current(sessionID string) money.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.resolved[sessionID]; ok {
		return c
	}
	return money.USD
}

// Format renders a USD amount in the session's current currency.
func (s *CurrencyService) Format(sessionID string, usd float64) string {
	return money.Format(s.Current(sessionID), usd)
}

// Resolve performs the location lookup for a session and caches the result.
// Concurrent calls for the same session share one lookup. A failed lookup
// caches USD so the session is not retried automatically; only a fresh
// login resolves again.
func (s *CurrencyService) Resolve(ctx context.Context, sessionID string) money.Currency {
	if sessionID == "" {
		return money.USD
	}

	s.mu.RLock()
	cached, ok := s.resolved[sessionID]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	v, _, _ := s.sf.Do(sessionID, func() (any, error) {
		currency := money.USD
		code, err := s.resolver.CountryCode(ctx)
		if err != nil {
			// Recovered locally: the user only ever sees the USD default.
			s.logger.DebugContext(ctx, "currency lookup failed, using default",
				"session_id", sessionID, "error", err)
		} else {
			currency = money.ByCountry(code)
		}

		s.mu.Lock()
		s.resolved[sessionID] = currency
		s.mu.Unlock()
		return currency, nil
	})

	return v.(money.Currency)
}

// ResolveAsync kicks off resolution in the background, typically at login.
// The deadline bounds the detached lookup; rendering proceeds with USD in
// the meantime.
func (s *CurrencyService) ResolveAsync(sessionID string, deadline time.Duration) {
	if sessionID == "" {
		return
	}
	s.mu.RLock()
	_, done := s.resolved[sessionID]
	s.mu.RUnlock()
	if done {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deadline)
		defer cancel()
		s.Resolve(ctx, sessionID)
	}()
}

// Forget drops the cached currency for a session, called when the session
// ends.
func (s *CurrencyService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resolved, sessionID)
}
