package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
	"unicode"
)

// Role represents a dashboard audience. Each role owns its own menu set;
// section ids are only meaningful relative to a role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleTenant   Role = "tenant"
	RoleGuest    Role = "guest"
)

// Valid reports whether the role is one of the declared constants.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTenant, RoleGuest:
		return true
	}
	return false
}

// Identity represents the principal returned by a credential provider.
// Providers map their own notion of an account into this shape.
type Identity struct {
	UserID      string // stable user identifier (the normalized email for simulated auth)
	DisplayName string
	Email       string
	Groups      []string
	ExpiresAt   time.Time // absolute expiry of the authentication grant
}

// Session is the server-side record kept for an authenticated dashboard user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	AvatarLabel string    `json:"avatar_label"`
	Role        Role      `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }

// AvatarLabelFor derives the short label shown in the dashboard avatar
// from a display name: the upper-cased initials of the first two words.
// An empty name yields "?".
func AvatarLabelFor(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return "?"
	}
	var b strings.Builder
	for i, f := range fields {
		if i == 2 {
			break
		}
		r := []rune(f)
		b.WriteRune(unicode.ToUpper(r[0]))
	}
	return b.String()
}
