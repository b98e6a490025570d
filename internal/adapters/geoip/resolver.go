package geoip

// Package geoip resolves the caller's country code from an opaque HTTP
// geolocation endpoint. The response shape is not assumed: the country code
// is pulled out of the JSON document with a configurable JMESPath
// expression, so any of the common ip-lookup services can be plugged in
// without code changes.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Config controls the geoip resolver.
type Config struct {
	// Endpoint is the lookup URL, e.g. "https://ipapi.co/json/".
	Endpoint string
	// CountryExpr is the JMESPath expression locating the two-letter country
	// code in the response document. Default "country_code".
	CountryExpr string
	// Timeout bounds the whole lookup. Default 3s when zero.
	Timeout time.Duration
	// Client overrides the HTTP client (tests). Defaults to a client with
	// the configured timeout.
	Client *http.Client
}

// Resolver implements ports.LocationResolver over an HTTP JSON endpoint.
type Resolver struct {
	endpoint string
	expr     string
	client   *http.Client
}

// NewResolver constructs a Resolver, validating the JMESPath expression up
// front so a misconfiguration fails at startup rather than per request.
func NewResolver(cfg Config) (*Resolver, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("geoip: Endpoint is required")
	}
	expr := cfg.CountryExpr
	if expr == "" {
		expr = "country_code"
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("geoip: compile country expression: %w", err)
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 3 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Resolver{
		endpoint: cfg.Endpoint,
		expr:     expr,
		client:   client,
	}, nil
}

// CountryCode performs the lookup and returns an upper-cased two-letter
// country code. Any transport, decode, or extraction problem is an error;
// callers fall back to the default currency and never surface it.
func (r *Resolver) CountryCode(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup: unexpected status %d", resp.StatusCode)
	}

	var doc any
	if decodeErr := json.NewDecoder(resp.Body).Decode(&doc); decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	extracted, err := jmespath.Search(r.expr, doc)
	if err != nil {
		return "", fmt.Errorf("extract country code: %w", err)
	}

	code, ok := extracted.(string)
	if !ok {
		return "", fmt.Errorf("extract country code: not a string: %T", extracted)
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 || !isAlpha(code) {
		return "", fmt.Errorf("extract country code: malformed %q", code)
	}

	return code, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
