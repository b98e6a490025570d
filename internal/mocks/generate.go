// Package mocks provides mock implementations for testing the vendo dashboard core.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// port interfaces. The mocks are generated using go:generate directives and provide
// a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "sess-1").Return(session, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -destination=ports.go -package=mocks github.com/vendosaas/vendo/internal/ports SessionStore,NavStore,CredentialProvider,LocationResolver,RoleMapper
