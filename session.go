package yoga

import "time"

// Session is an authenticated admin session persisted between commands, the
// way the mobile client keeps its tokens after login.
type Session struct {
	Username     string
	Role         Role
	AccessToken  string
	RefreshToken string
	BaseURL      string // API the tokens were issued by
	CreatedAt    time.Time
}

// NewSession builds a Session from a successful login against baseURL.
func NewSession(baseURL string, r LoginResult, now time.Time) Session {
	return Session{
		Username:     r.Username,
		Role:         r.Role,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		BaseURL:      baseURL,
		CreatedAt:    now,
	}
}

// WithTokens returns a copy of s carrying the refreshed tokens. An empty
// refresh token keeps the current one.
func (s Session) WithTokens(p TokenPair) Session {
	s.AccessToken = p.AccessToken
	if p.RefreshToken != "" {
		s.RefreshToken = p.RefreshToken
	}
	return s
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
