package yoga

import "time"

// TokenPair is the token set issued by a refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenInfo is the displayable subset of an access token's claims.
type TokenInfo struct {
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token expired before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
