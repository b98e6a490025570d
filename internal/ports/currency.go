package ports

import "context"

// LocationResolver returns the two-letter country code for the caller's
// location, or an error. Callers treat any error or malformed code as
// "unknown" and fall back to the default currency; resolver failures are
// never surfaced to the user.
type LocationResolver interface {
	CountryCode(ctx context.Context) (string, error)
}
