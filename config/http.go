package config

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values. A CookieDomain
// that is a bare public suffix (e.g. "co.uk") would scope the session cookie
// across unrelated sites; browsers reject it and so do we.
func (h *HTTPConfig) Sanitize() {
	domain := strings.TrimPrefix(strings.TrimSpace(h.CookieDomain), ".")
	if domain == "" {
		h.CookieDomain = ""
		return
	}
	if suffix, _ := publicsuffix.PublicSuffix(domain); suffix == domain {
		h.CookieDomain = ""
		return
	}
	h.CookieDomain = domain
}
