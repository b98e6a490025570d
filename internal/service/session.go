package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/domain/nav"
	apperrors "github.com/vendosaas/vendo/internal/errors"
	"github.com/vendosaas/vendo/internal/ports"
)

// PasswordMinLength is the canonical minimum password length. Registration
// and login share the one policy.
const PasswordMinLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrLoginPending is returned when a login for the same account is already
// in flight; the duplicate submission is ignored.
var ErrLoginPending = apperrors.Pending("login already in progress")

// errSessionExpired marks a session past its expiry.
var errSessionExpired = apperrors.NotFound("session expired")

// SessionStores groups the state stores a session owns. Navigation state
// lives and dies with the session record.
type SessionStores struct {
	Sessions ports.SessionStore
	Nav      ports.NavStore
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Provider ports.CredentialProvider
	Stores   SessionStores
	Roles    ports.RoleMapper
}

// SessionService owns the dashboard session lifecycle: simulated login,
// explicit-confirmation logout, and session lookup. A per-account in-flight
// guard makes duplicate login submissions no-ops, so each pending login
// produces exactly one success transition.
type SessionService struct {
	provider ports.CredentialProvider
	sessions ports.SessionStore
	nav      ports.NavStore
	roles    ports.RoleMapper

	mu         sync.Mutex
	inflight   map[string]struct{}
	registered map[string]struct{}
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Provider == nil {
		panic("session service: Provider is required")
	}
	if opts.Stores.Sessions == nil || opts.Stores.Nav == nil {
		panic("session service: Stores are required")
	}
	if opts.Roles == nil {
		panic("session service: Roles is required")
	}
	return &SessionService{
		provider:   opts.Provider,
		sessions:   opts.Stores.Sessions,
		nav:        opts.Stores.Nav,
		roles:      opts.Roles,
		inflight:   make(map[string]struct{}),
		registered: make(map[string]struct{}),
	}
}

// LoginInput carries a login form submission.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the established session and where the client should
// navigate next: the role-appropriate dashboard entry point.
type LoginResult struct {
	Session    domainauth.Session
	RedirectTo string
}

// Login validates the credentials, runs the (simulated) authentication, and
// establishes a session with fresh navigation state. A second call for the
// same email while one is pending returns ErrLoginPending without any state
// change. Validation failures never mutate session state.
func (s *SessionService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := validateCredentials(in); err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(in.Email))
	if !s.beginLogin(key) {
		return nil, ErrLoginPending
	}
	defer s.endLogin(key)

	identity, err := s.provider.Authenticate(ctx, ports.Credentials{
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	role := s.roles.Map(identity.Groups)

	session := domainauth.Session{
		ID:          uuid.New().String(),
		UserID:      identity.UserID,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		AvatarLabel: domainauth.AvatarLabelFor(identity.DisplayName),
		Role:        role,
		ExpiresAt:   identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	// Every login starts at the default section with the sub-menu collapsed.
	if navErr := s.nav.Save(ctx, session.ID, nav.NewState(role)); navErr != nil {
		return nil, fmt.Errorf("initialize navigation state: %w", navErr)
	}

	return &LoginResult{
		Session:    session,
		RedirectTo: "/dashboard",
	}, nil
}

// beginLogin marks key in flight; false means a login is already pending.
func (s *SessionService) beginLogin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, pending := s.inflight[key]; pending {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *SessionService) endLogin(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}

// RegisterInput carries a registration form submission.
type RegisterInput struct {
	DisplayName     string
	Email           string
	Password        string
	PasswordConfirm string
}

// Register validates a registration and records the email as taken. The
// account itself is simulated; nothing beyond the in-memory email registry
// exists. Validation failures carry the offending field and leave all state
// untouched.
func (s *SessionService) Register(_ context.Context, in RegisterInput) error {
	if strings.TrimSpace(in.DisplayName) == "" {
		return apperrors.ValidationField("display_name", "Name is required.")
	}
	if err := validateCredentials(LoginInput{Email: in.Email, Password: in.Password}); err != nil {
		return err
	}
	if in.Password != in.PasswordConfirm {
		return apperrors.ValidationField("password_confirm", "Passwords do not match.")
	}

	key := strings.ToLower(strings.TrimSpace(in.Email))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.registered[key]; taken {
		return apperrors.Conflict("An account with this email already exists.")
	}
	s.registered[key] = struct{}{}
	return nil
}

// GetSession retrieves a session by ID, cleaning up expired records.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.NotFound("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, fmt.Errorf("delete expired session: %w", deleteErr)
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout ends a session when confirmed. A declined confirmation leaves the
// session untouched and returns false. On confirmation the session and its
// navigation state are discarded together.
func (s *SessionService) Logout(ctx context.Context, sessionID string, confirmed bool) (bool, error) {
	if !confirmed || sessionID == "" {
		return false, nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	if err := s.nav.Delete(ctx, sessionID); err != nil {
		return false, fmt.Errorf("delete navigation state: %w", err)
	}

	return true, nil
}

// validateCredentials enforces the canonical credential policy: a
// well-formed email and a password of at least PasswordMinLength characters.
func validateCredentials(in LoginInput) error {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return apperrors.ValidationField("email", "Email is required.")
	}
	if !emailPattern.MatchString(email) {
		return apperrors.ValidationField("email", "Enter a valid email address.")
	}
	if in.Password == "" {
		return apperrors.ValidationField("password", "Password is required.")
	}
	if len(in.Password) < PasswordMinLength {
		return apperrors.ValidationField("password",
			fmt.Sprintf("Password must be at least %d characters.", PasswordMinLength))
	}
	return nil
}
