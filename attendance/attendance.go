// Package attendance implements [yoga.AuthService] for the attendance
// backend's REST API.
//
// All endpoints speak JSON. The backend answers most failures with HTTP 400
// and a {"error": ...} body, which the client surfaces as *yoga.Error.
package attendance

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the API root of a locally running backend.
	DefaultBaseURL = "http://localhost:8080/api/v1"

	pendingUsersPath = "/auth/pending-users"
	registerPath     = "/auth/register"
	loginPath        = "/auth/login"
	approveUserPath  = "/auth/approve-user/"
	rejectUserPath   = "/auth/reject-user/"
	deleteUserPath   = "/auth/delete-user/"
	refreshPath      = "/auth/refresh"
	logoutPath       = "/auth/logout"
	createAdminPath  = "/fix/create-admin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type logoutRequest struct {
	Username string `json:"username"`
}

type rejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

// loginResponse accepts both the current token fields and the legacy
// single "token" field older deployments return.
type loginResponse struct {
	AccessToken    string `json:"accessToken"`
	Token          string `json:"token"`
	RefreshToken   string `json:"refreshToken"`
	Role           string `json:"role"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Level          int    `json:"level"`
	ProfilePicture string `json:"profilePicture"`
}

type pendingUser struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	CreatedAt backendTime `json:"createdAt"`
}

// backendTime decodes the backend's zone-less LocalDateTime strings.
// Values that do not parse decode to the zero time.
type backendTime time.Time

var backendTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t *backendTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Not a string (null, or Jackson's array form); keep the zero value.
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range backendTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = backendTime(parsed)
			return nil
		}
	}
	return nil
}
