package simauth

// Package simauth provides a simulated CredentialProvider. There is no
// backend: any well-formed credential pair is accepted after a fixed latency,
// which stands in for the round trip a real identity provider would take.

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vendosaas/vendo/internal/clock"
	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/ports"
)

// Config controls the simulated provider behavior.
type Config struct {
	// CustomerGroup is granted to every accepted login by default.
	CustomerGroup string
	// TenantGroup is granted instead when the email domain is listed in
	// TenantDomains.
	TenantGroup string
	// TenantDomains lists email domains whose users land on the tenant
	// dashboard (e.g., "vendor.example.com").
	TenantDomains []string
	// Latency is the simulated authentication delay. Default 750ms when zero.
	Latency time.Duration
	// SessionDuration bounds the issued grant. Default 8h when zero.
	SessionDuration time.Duration
	// Clock supplies time; defaults to the system clock.
	Clock clock.Clock
}

// Provider implements ports.CredentialProvider for the simulated backend.
type Provider struct {
	customerGroup   string
	tenantGroup     string
	tenantDomains   map[string]struct{}
	latency         time.Duration
	sessionDuration time.Duration
	clock           clock.Clock
}

// NewProvider constructs a simulated provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.CustomerGroup == "" {
		return nil, errors.New("sim auth: CustomerGroup is required")
	}
	if cfg.TenantGroup == "" {
		return nil, errors.New("sim auth: TenantGroup is required")
	}
	latency := cfg.Latency
	if latency == 0 {
		latency = 750 * time.Millisecond
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System{}
	}

	domains := make(map[string]struct{}, len(cfg.TenantDomains))
	for _, d := range cfg.TenantDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			domains[d] = struct{}{}
		}
	}

	return &Provider{
		customerGroup:   cfg.CustomerGroup,
		tenantGroup:     cfg.TenantGroup,
		tenantDomains:   domains,
		latency:         latency,
		sessionDuration: dur,
		clock:           clk,
	}, nil
}

// Authenticate waits out the simulated latency and returns an identity
// derived from the email. Credentials are assumed well-formed; the only
// failure modes are context cancellation and a structurally empty email.
func (p *Provider) Authenticate(ctx context.Context, creds ports.Credentials) (domainauth.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return domainauth.Identity{}, errors.New("sim auth: malformed email")
	}

	select {
	case <-ctx.Done():
		return domainauth.Identity{}, ctx.Err()
	case <-p.clock.After(p.latency):
	}

	group := p.customerGroup
	if _, tenant := p.tenantDomains[domain]; tenant {
		group = p.tenantGroup
	}

	return domainauth.Identity{
		UserID:      email,
		DisplayName: displayNameFromLocal(local),
		Email:       email,
		Groups:      []string{group},
		ExpiresAt:   p.clock.Now().Add(p.sessionDuration),
	}, nil
}

// displayNameFromLocal turns "jane.doe" or "jane_doe" into "Jane Doe".
func displayNameFromLocal(local string) string {
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return local
	}
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
