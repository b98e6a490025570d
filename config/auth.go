package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend selects the session/navigation state store.
type SessionBackend string

const (
	// SessionBackendMemory keeps all state in process memory (the default;
	// everything resets on restart).
	SessionBackendMemory SessionBackend = "memory"
	// SessionBackendRedis keeps sessions and navigation state in Redis.
	SessionBackendRedis SessionBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (s *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "redis":
		*s = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: memory, redis)", v)
	}
}

// SimAuthConfig controls the simulated credential provider.
type SimAuthConfig struct {
	// Latency is the simulated authentication delay.
	Latency time.Duration `env:"LATENCY" envDefault:"750ms"`

	// SessionDuration bounds issued sessions.
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"8h"`

	// TenantDomains lists email domains that land on the tenant dashboard.
	TenantDomains []string `env:"TENANT_DOMAINS" envDefault:"" envSeparator:";"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// CustomerGroup is the group granted to customer-dashboard users.
	CustomerGroup string `env:"CUSTOMER_GROUP" envDefault:"customers"`

	// TenantGroup is the group granted to tenant-dashboard users.
	TenantGroup string `env:"TENANT_GROUP" envDefault:"tenants"`

	// Sim configures the simulated credential provider.
	Sim SimAuthConfig `envPrefix:"SIM_AUTH_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Sim.Latency < 0 {
		a.Sim.Latency = 0
	}
	if a.Sim.SessionDuration <= 0 {
		a.Sim.SessionDuration = 8 * time.Hour
	}
}
