package yoga

import "time"

// Registration is the body of a register request.
type Registration struct {
	Name     string
	Username string
	Email    string
	Phone    string
	Password string
}

// Credentials returns the login credentials for the registered account.
func (r Registration) Credentials() Credentials {
	return Credentials{Username: r.Username, Password: r.Password}
}

// Credentials is the body of a login request.
type Credentials struct {
	Username string
	Password string
}

// PendingUser is a registered account awaiting administrative approval.
type PendingUser struct {
	ID        int64
	Name      string
	Username  string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Status int
	// Raw is the full decoded body, kept for verbatim reporting.
	Raw Reply

	AccessToken    string
	RefreshToken   string
	Role           Role
	Username       string
	Name           string
	Level          int
	ProfilePicture string
}

// Reply is a decoded JSON object answered by a backend endpoint. The admin
// endpoints reply with ad-hoc maps such as {"message": ...}, so the fields
// are kept verbatim for reporting.
type Reply map[string]any

// Message returns the "message" field, if present.
func (r Reply) Message() string {
	s, _ := r["message"].(string)
	return s
}

// ErrorMessage returns the "error" field, if present.
func (r Reply) ErrorMessage() string {
	s, _ := r["error"].(string)
	return s
}
