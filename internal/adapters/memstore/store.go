package memstore

// Package memstore provides in-process session and navigation stores. This
// is the default backend: all dashboard state is volatile and vanishes on
// restart, matching the shell's no-persistence contract.

import (
	"context"
	"sync"

	"github.com/vendosaas/vendo/internal/clock"
	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/domain/nav"
)

// ErrNotFound is returned when a record is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "record not found" }

var ErrNotFound error = notFoundError{}

// SessionStore is a mutex-guarded in-memory session store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
	clock    clock.Clock
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore(clk clock.Clock) *SessionStore {
	if clk == nil {
		clk = clock.System{}
	}
	return &SessionStore{
		sessions: make(map[string]domainauth.Session),
		clock:    clk,
	}
}

func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errEmptyID
	}
	if !sess.ExpiresAt.After(s.clock.Now()) {
		return errExpired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	if s.clock.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// NavStore is a mutex-guarded in-memory navigation state store.
type NavStore struct {
	mu     sync.RWMutex
	states map[string]nav.State
}

// NewNavStore creates an empty in-memory navigation store.
func NewNavStore() *NavStore {
	return &NavStore{states: make(map[string]nav.State)}
}

func (s *NavStore) Save(_ context.Context, sessionID string, state nav.State) error {
	if sessionID == "" {
		return errEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
	return nil
}

func (s *NavStore) Get(_ context.Context, sessionID string) (nav.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[sessionID]
	if !ok {
		return nav.State{}, ErrNotFound
	}
	return state, nil
}

func (s *NavStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

type constError string

func (e constError) Error() string { return string(e) }

const (
	errEmptyID constError = "id cannot be empty"
	errExpired constError = "session is expired"
)
