package config

import "time"

// CurrencyConfig contains currency lookup configuration.
type CurrencyConfig struct {
	// LookupURL is the geolocation endpoint consulted once per session.
	LookupURL string `env:"LOOKUP_URL" envDefault:"https://ipapi.co/json/"`

	// CountryExpr is the JMESPath expression locating the two-letter country
	// code in the lookup response.
	CountryExpr string `env:"COUNTRY_EXPR" envDefault:"country_code"`

	// LookupTimeout bounds the lookup round trip.
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"3s"`
}

// Sanitize applies guardrails to currency configuration values.
func (c *CurrencyConfig) Sanitize() {
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = 3 * time.Second
	}
	if c.CountryExpr == "" {
		c.CountryExpr = "country_code"
	}
}
