// Package mock provides test doubles for yoga interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/yoga"
)

// Interface compliance checks.
var (
	_ yoga.AuthService           = (*AuthService)(nil)
	_ yoga.RegistrationValidator = (*RegistrationValidator)(nil)
	_ yoga.TokenInspector        = (*TokenInspector)(nil)
)

// AuthService is a test double for yoga.AuthService.
// Set the function fields for the methods you need.
type AuthService struct {
	PingFn         func(ctx context.Context) (int, error)
	PendingUsersFn func(ctx context.Context) ([]yoga.PendingUser, error)
	CreateAdminFn  func(ctx context.Context) (yoga.Response, error)
	RegisterFn     func(ctx context.Context, r yoga.Registration) (yoga.Response, error)
	LoginFn        func(ctx context.Context, c yoga.Credentials) (yoga.LoginResult, error)
	ApproveUserFn  func(ctx context.Context, username string) (yoga.Response, error)
	RejectUserFn   func(ctx context.Context, username, reason string) (yoga.Response, error)
	DeleteUserFn   func(ctx context.Context, username string) (yoga.Response, error)
	RefreshFn      func(ctx context.Context, refreshToken string) (yoga.TokenPair, error)
	LogoutFn       func(ctx context.Context, username string) (yoga.Response, error)
}

// Ping delegates to PingFn.
func (s *AuthService) Ping(ctx context.Context) (int, error) {
	return s.PingFn(ctx)
}

// PendingUsers delegates to PendingUsersFn.
func (s *AuthService) PendingUsers(ctx context.Context) ([]yoga.PendingUser, error) {
	return s.PendingUsersFn(ctx)
}

// CreateAdmin delegates to CreateAdminFn.
func (s *AuthService) CreateAdmin(ctx context.Context) (yoga.Response, error) {
	return s.CreateAdminFn(ctx)
}

// Register delegates to RegisterFn.
func (s *AuthService) Register(ctx context.Context, r yoga.Registration) (yoga.Response, error) {
	return s.RegisterFn(ctx, r)
}

// Login delegates to LoginFn.
func (s *AuthService) Login(ctx context.Context, c yoga.Credentials) (yoga.LoginResult, error) {
	return s.LoginFn(ctx, c)
}

// ApproveUser delegates to ApproveUserFn.
func (s *AuthService) ApproveUser(ctx context.Context, username string) (yoga.Response, error) {
	return s.ApproveUserFn(ctx, username)
}

// RejectUser delegates to RejectUserFn.
func (s *AuthService) RejectUser(ctx context.Context, username, reason string) (yoga.Response, error) {
	return s.RejectUserFn(ctx, username, reason)
}

// DeleteUser delegates to DeleteUserFn.
func (s *AuthService) DeleteUser(ctx context.Context, username string) (yoga.Response, error) {
	return s.DeleteUserFn(ctx, username)
}

// Refresh delegates to RefreshFn.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (yoga.TokenPair, error) {
	return s.RefreshFn(ctx, refreshToken)
}

// Logout delegates to LogoutFn.
func (s *AuthService) Logout(ctx context.Context, username string) (yoga.Response, error) {
	return s.LogoutFn(ctx, username)
}

// RegistrationValidator is a test double for yoga.RegistrationValidator.
type RegistrationValidator struct {
	ValidateRegistrationFn func(r yoga.Registration) error
}

// ValidateRegistration delegates to ValidateRegistrationFn.
func (v *RegistrationValidator) ValidateRegistration(r yoga.Registration) error {
	return v.ValidateRegistrationFn(r)
}

// TokenInspector is a test double for yoga.TokenInspector.
type TokenInspector struct {
	InspectFn func(token string) (yoga.TokenInfo, error)
}

// Inspect delegates to InspectFn.
func (i *TokenInspector) Inspect(token string) (yoga.TokenInfo, error) {
	return i.InspectFn(token)
}
