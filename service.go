package yoga

import "context"

// AuthService is the user-administration surface of the attendance backend.
// Implementations return *Error for non-2xx responses; transport failures are
// returned as-is.
type AuthService interface {
	// Ping issues a cheap read against the backend and reports the HTTP
	// status. Only transport failures are returned as errors.
	Ping(ctx context.Context) (int, error)
	PendingUsers(ctx context.Context) ([]PendingUser, error)
	CreateAdmin(ctx context.Context) (Response, error)
	Register(ctx context.Context, r Registration) (Response, error)
	Login(ctx context.Context, c Credentials) (LoginResult, error)
	ApproveUser(ctx context.Context, username string) (Response, error)
	RejectUser(ctx context.Context, username, reason string) (Response, error)
	DeleteUser(ctx context.Context, username string) (Response, error)
	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	// Logout revokes every refresh token and session the backend holds for
	// username.
	Logout(ctx context.Context, username string) (Response, error)
}

// Response is a successful reply from an ad-hoc backend endpoint.
type Response struct {
	Status int
	Body   Reply
}

// RegistrationValidator checks a registration payload before it is sent.
// Failures wrap ErrValidation.
type RegistrationValidator interface {
	ValidateRegistration(r Registration) error
}

// TokenInspector decodes the claims of an access token for display. It does
// not verify signatures; the backend owns the signing key.
type TokenInspector interface {
	Inspect(token string) (TokenInfo, error)
}
