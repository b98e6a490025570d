package service

import (
	"context"
	"fmt"

	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
	"github.com/vendosaas/vendo/internal/domain/nav"
	"github.com/vendosaas/vendo/internal/ports"
)

// NavigationServiceOptions groups dependencies for NavigationService.
type NavigationServiceOptions struct {
	Store ports.NavStore
}

// NavigationService applies navigation intents to a session's stored state
// through the pure reducer in the nav package. Invalid section ids are
// absorbed by the reducer; the service only fails on store errors.
type NavigationService struct {
	store ports.NavStore
}

// NewNavigationService constructs a new NavigationService.
func NewNavigationService(opts NavigationServiceOptions) *NavigationService {
	if opts.Store == nil {
		panic("navigation service: Store is required")
	}
	return &NavigationService{store: opts.Store}
}

// State returns the session's navigation state, initializing it to the
// role's default when the store has no record.
func (s *NavigationService) State(ctx context.Context, sess domainauth.Session) (nav.State, error) {
	return s.load(ctx, sess)
}

// SelectSection applies a selectSection intent and returns the resulting
// state. Ids outside the role's menu set leave the state unchanged.
func (s *NavigationService) SelectSection(ctx context.Context, sess domainauth.Session, id nav.SectionID) (nav.State, error) {
	return s.apply(ctx, sess, nav.SelectSection{ID: id})
}

// ToggleSubMenu flips the sub-menu expansion flag and returns the resulting
// state. The active section is never changed by a toggle.
func (s *NavigationService) ToggleSubMenu(ctx context.Context, sess domainauth.Session) (nav.State, error) {
	return s.apply(ctx, sess, nav.ToggleSubMenu{})
}

func (s *NavigationService) apply(ctx context.Context, sess domainauth.Session, intent nav.Intent) (nav.State, error) {
	state, err := s.load(ctx, sess)
	if err != nil {
		return nav.State{}, err
	}

	next := nav.Reduce(state, intent)
	if next == state {
		return state, nil
	}

	if saveErr := s.store.Save(ctx, sess.ID, next); saveErr != nil {
		return nav.State{}, fmt.Errorf("save navigation state: %w", saveErr)
	}
	return next, nil
}

func (s *NavigationService) load(ctx context.Context, sess domainauth.Session) (nav.State, error) {
	state, err := s.store.Get(ctx, sess.ID)
	if err != nil {
		// Missing state is not an error: start at the role default.
		return nav.NewState(sess.Role), nil
	}
	return nav.Sanitize(state), nil
}
