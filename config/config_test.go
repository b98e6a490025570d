package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseConfig(t *testing.T) AppConfig {
	t.Helper()
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := parseConfig(t)
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Empty(t, cfg.HTTP.CookieDomain)
	assert.Equal(t, "customers", cfg.Auth.CustomerGroup)
	assert.Equal(t, "tenants", cfg.Auth.TenantGroup)
	assert.Equal(t, 750*time.Millisecond, cfg.Auth.Sim.Latency)
	assert.Equal(t, 8*time.Hour, cfg.Auth.Sim.SessionDuration)
	assert.Equal(t, "https://ipapi.co/json/", cfg.Currency.LookupURL)
	assert.Equal(t, "country_code", cfg.Currency.CountryExpr)
	assert.Equal(t, 3*time.Second, cfg.Currency.LookupTimeout)
}

func TestSessionBackend_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    SessionBackend
		expectError bool
	}{
		{input: "memory", expected: SessionBackendMemory},
		{input: "redis", expected: SessionBackendRedis},
		{input: "REDIS", expected: SessionBackendRedis},
		{input: "postgres", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var s SessionBackend
			err := s.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SIM_AUTH_LATENCY", "100ms")
	t.Setenv("SIM_AUTH_TENANT_DOMAINS", "vendor.example.com;partner.example.com")
	t.Setenv("CURRENCY_LOOKUP_TIMEOUT", "5s")

	cfg := parseConfig(t)
	cfg.Sanitize()

	assert.Equal(t, SessionBackendRedis, cfg.SessionBackend)
	assert.Equal(t, 100*time.Millisecond, cfg.Auth.Sim.Latency)
	assert.Equal(t, []string{"vendor.example.com", "partner.example.com"}, cfg.Auth.Sim.TenantDomains)
	assert.Equal(t, 5*time.Second, cfg.Currency.LookupTimeout)
}

func TestHTTPConfig_Sanitize_CookieDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty stays empty", input: "", expected: ""},
		{name: "leading dot stripped", input: ".app.example.com", expected: "app.example.com"},
		{name: "normal domain kept", input: "app.example.com", expected: "app.example.com"},
		{name: "bare public suffix rejected", input: "co.uk", expected: ""},
		{name: "bare tld rejected", input: "com", expected: ""},
		{name: "whitespace trimmed", input: "  app.example.com  ", expected: "app.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HTTPConfig{CookieDomain: tt.input}
			h.Sanitize()
			assert.Equal(t, tt.expected, h.CookieDomain)
		})
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	a := AuthConfig{Sim: SimAuthConfig{Latency: -time.Second, SessionDuration: 0}}
	a.Sanitize()

	assert.Equal(t, time.Duration(0), a.Sim.Latency)
	assert.Equal(t, 8*time.Hour, a.Sim.SessionDuration)
}

func TestCurrencyConfig_Sanitize(t *testing.T) {
	c := CurrencyConfig{LookupTimeout: -1, CountryExpr: ""}
	c.Sanitize()

	assert.Equal(t, 3*time.Second, c.LookupTimeout)
	assert.Equal(t, "country_code", c.CountryExpr)
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Run("NODE_ENV fallback", func(t *testing.T) {
		t.Setenv("NODE_ENV", "development")
		cfg := parseConfig(t)
		cfg.Sanitize()
		assert.True(t, cfg.IsDev)
	})

	t.Run("DEV takes precedence", func(t *testing.T) {
		t.Setenv("DEV", "true")
		t.Setenv("NODE_ENV", "production")
		cfg := parseConfig(t)
		cfg.Sanitize()
		assert.True(t, cfg.IsDev)
	})
}
