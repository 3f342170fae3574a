package runbook_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/yoga"
	"github.com/fwojciec/yoga/attendance"
	"github.com/fwojciec/yoga/mock"
	"github.com/fwojciec/yoga/runbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testReg = yoga.Registration{
	Name:     "Test User",
	Username: "testuser123",
	Email:    "test123@example.com",
	Phone:    "1234567890",
	Password: "Test1234",
}

// noWait skips the register-to-login pause.
func noWait(context.Context, time.Duration) error { return nil }

func newRunner(svc yoga.AuthService, opts ...runbook.Option) (*runbook.Runner, *bytes.Buffer) {
	var out bytes.Buffer
	opts = append([]runbook.Option{runbook.WithWait(noWait)}, opts...)
	return runbook.New(svc, &out, opts...), &out
}

// backend starts a test server that answers each path with a fixed status
// and body.
func backend(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *attendance.Client {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return attendance.New(srv.URL + "/api/v1")
}

func reply(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// unreachable returns a client for a server that has already shut down.
func unreachable(t *testing.T) *attendance.Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return attendance.New(url + "/api/v1")
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestRunner_CheckUsers(t *testing.T) {
	t.Parallel()

	t.Run("lists pending users and the checklist", func(t *testing.T) {
		t.Parallel()
		client := backend(t, map[string]func(http.ResponseWriter, *http.Request){
			"GET /api/v1/auth/pending-users": reply(http.StatusOK, `[
				{"id":1,"name":"Ann","username":"ann","email":"ann@example.com","phone":"1234567890","createdAt":"2026-01-02T10:00:00"},
				{"id":2,"name":"Bob","username":"bob","email":"bob@example.com","phone":"1234567890","createdAt":"2026-01-03T10:00:00"}
			]`),
		})
		r, out := newRunner(client)

		require.NoError(t, r.CheckUsers(context.Background()))

		got := out.String()
		assert.Contains(t, got, "=== PENDING USERS (approved=false) ===\n- ann (ann@example.com)\n- bob (bob@example.com)\n")
		assert.Contains(t, got, "WHAT YOU NEED TO DO")
		assert.Contains(t, got, "SELECT username, email, role, email_verified, approved FROM user;")
		assert.Contains(t, got, "UPDATE user SET role='USER', email_verified=1, approved=1 WHERE username!='admin';")
		assert.Contains(t, got, "SELECT username, role FROM user ORDER BY role;")
	})

	t.Run("no pending users", func(t *testing.T) {
		t.Parallel()
		svc := &mock.AuthService{
			PendingUsersFn: func(context.Context) ([]yoga.PendingUser, error) { return nil, nil },
		}
		r, out := newRunner(svc)

		require.NoError(t, r.CheckUsers(context.Background()))
		assert.Contains(t, out.String(), "=== PENDING USERS (approved=false) ===\nNo pending users found.\n")
	})

	t.Run("unreachable endpoint prints one error line", func(t *testing.T) {
		t.Parallel()
		r, out := newRunner(unreachable(t))

		err := r.CheckUsers(context.Background())
		require.Error(t, err)

		var errLines []string
		for _, l := range lines(out.String()) {
			if strings.HasPrefix(l, "Error: ") {
				errLines = append(errLines, l)
			}
		}
		assert.Len(t, errLines, 1)
		assert.NotContains(t, out.String(), "PENDING USERS")
	})
}

func TestRunner_SetupAdmin(t *testing.T) {
	t.Parallel()

	t.Run("prints the fixed payload and default credentials", func(t *testing.T) {
		t.Parallel()
		client := backend(t, map[string]func(http.ResponseWriter, *http.Request){
			"POST /api/v1/fix/create-admin": reply(http.StatusOK, `{"message":"Admin user created","username":"admin"}`),
		})
		r, out := newRunner(client)

		require.NoError(t, r.SetupAdmin(context.Background()))
		assert.Equal(t, []string{
			"Creating admin user...",
			`Response: {"message":"Admin user created","username":"admin"}`,
			"",
			"SUCCESS! You can now log in as the admin user.",
			"Username: admin",
			"Password: Admin123",
		}, lines(out.String()))
	})

	t.Run("non-2xx prints the failure body", func(t *testing.T) {
		t.Parallel()
		client := backend(t, map[string]func(http.ResponseWriter, *http.Request){
			"POST /api/v1/fix/create-admin": reply(http.StatusInternalServerError, `{"error":"boom"}`),
		})
		r, out := newRunner(client)

		err := r.SetupAdmin(context.Background())
		require.Error(t, err)
		assert.Contains(t, out.String(), `Failed: {"error":"boom"}`)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		t.Parallel()
		r, out := newRunner(unreachable(t))

		require.Error(t, r.SetupAdmin(context.Background()))
		got := lines(out.String())
		assert.True(t, strings.HasPrefix(got[1], "Error: "), got[1])
		assert.Equal(t, "Make sure the backend is running!", got[2])
	})
}

func TestRunner_TestRegistration(t *testing.T) {
	t.Parallel()

	t.Run("registers then logs in", func(t *testing.T) {
		t.Parallel()
		client := backend(t, map[string]func(http.ResponseWriter, *http.Request){
			"POST /api/v1/auth/register": reply(http.StatusOK, `{"message":"Registration successful"}`),
			"POST /api/v1/auth/login":    reply(http.StatusOK, `{"role":"USER","username":"testuser123"}`),
		})
		r, out := newRunner(client)

		require.NoError(t, r.TestRegistration(context.Background(), testReg))
		got := out.String()
		assert.Contains(t, got, "Status: 200\nResponse: {\n  \"message\": \"Registration successful\"\n}\n")
		assert.Contains(t, got, "Registration successful!")
		assert.Contains(t, got, "Login Status: 200\nLogin Response: {\n  \"role\": \"USER\",\n  \"username\": \"testuser123\"\n}\n")
	})

	t.Run("failed registration skips login", func(t *testing.T) {
		t.Parallel()
		svc := &mock.AuthService{
			RegisterFn: func(context.Context, yoga.Registration) (yoga.Response, error) {
				return yoga.Response{}, &yoga.Error{Status: 400, Message: "Username already exists", Body: yoga.Reply{"error": "Username already exists"}}
			},
			LoginFn: func(context.Context, yoga.Credentials) (yoga.LoginResult, error) {
				t.Fatal("login must not run")
				return yoga.LoginResult{}, nil
			},
		}
		r, out := newRunner(svc)

		err := r.TestRegistration(context.Background(), testReg)
		assert.ErrorIs(t, err, yoga.ErrAlreadyExists)
		assert.Contains(t, out.String(), "Status: 400\n")
	})

	t.Run("invalid registration is not sent", func(t *testing.T) {
		t.Parallel()
		svc := &mock.AuthService{}
		v := &mock.RegistrationValidator{
			ValidateRegistrationFn: func(yoga.Registration) error {
				return errors.Join(errors.New("Invalid email format"), yoga.ErrValidation)
			},
		}
		r, out := newRunner(svc, runbook.WithValidator(v))

		err := r.TestRegistration(context.Background(), testReg)
		assert.ErrorIs(t, err, yoga.ErrValidation)
		assert.Contains(t, out.String(), "Invalid registration: ")
	})
}

func TestRunner_Smoke(t *testing.T) {
	t.Parallel()

	admin := yoga.Credentials{Username: "admin", Password: "Admin123"}

	t.Run("reports every step", func(t *testing.T) {
		t.Parallel()
		client := backend(t, map[string]func(http.ResponseWriter, *http.Request){
			"GET /api/v1/auth/pending-users": reply(http.StatusOK, `[]`),
			"POST /api/v1/auth/register":     reply(http.StatusBadRequest, `{"error":"Username already exists"}`),
			"POST /api/v1/auth/login":        reply(http.StatusOK, `{"accessToken":"t","role":"ADMIN"}`),
		})
		r, out := newRunner(client)

		require.NoError(t, r.Smoke(context.Background(), testReg, admin))
		assert.Equal(t, []string{
			"Testing backend health...",
			"Health check: 200",
			"",
			"Testing registration...",
			`Register response: 400 {"error":"Username already exists"}`,
			"",
			"Testing login...",
			`Login response: 200 {"accessToken":"t","role":"ADMIN"}`,
		}, lines(out.String()))
	})

	t.Run("steps continue after failures", func(t *testing.T) {
		t.Parallel()
		r, out := newRunner(unreachable(t))

		err := r.Smoke(context.Background(), testReg, admin)
		require.Error(t, err)
		got := out.String()
		assert.Contains(t, got, "Backend not reachable: ")
		assert.Contains(t, got, "Register error: ")
		assert.Contains(t, got, "Login error: ")
	})
}

func TestRunner_AdminActions(t *testing.T) {
	t.Parallel()

	svc := &mock.AuthService{
		ApproveUserFn: func(_ context.Context, u string) (yoga.Response, error) {
			return yoga.Response{Status: 200, Body: yoga.Reply{"message": "User approved: " + u}}, nil
		},
		RejectUserFn: func(_ context.Context, u, reason string) (yoga.Response, error) {
			return yoga.Response{Status: 200, Body: yoga.Reply{"message": "User rejected: " + u + " (" + reason + ")"}}, nil
		},
		DeleteUserFn: func(context.Context, string) (yoga.Response, error) {
			return yoga.Response{}, &yoga.Error{Status: 404, Message: "User not found"}
		},
	}
	r, out := newRunner(svc)

	require.NoError(t, r.Approve(context.Background(), "ann"))
	require.NoError(t, r.Reject(context.Background(), "bob", "duplicate"))
	err := r.Delete(context.Background(), "zed")
	assert.ErrorIs(t, err, yoga.ErrNotFound)

	assert.Equal(t, []string{
		"Approving ann...",
		`Response: {"message":"User approved: ann"}`,
		"Rejecting bob...",
		`Response: {"message":"User rejected: bob (duplicate)"}`,
		"Deleting zed...",
		"Failed: HTTP 404: User not found",
	}, lines(out.String()))
}

func TestRunner_SessionExpired(t *testing.T) {
	t.Parallel()

	svc := &mock.AuthService{
		ApproveUserFn: func(context.Context, string) (yoga.Response, error) {
			return yoga.Response{}, fmt.Errorf("attendance: approve user: %w: %w",
				yoga.ErrSessionExpired, &yoga.Error{Status: 400, Message: "Refresh token expired"})
		},
	}
	r, out := newRunner(svc)

	err := r.Approve(context.Background(), "ann")
	assert.ErrorIs(t, err, yoga.ErrSessionExpired)
	assert.Equal(t, []string{
		"Approving ann...",
		"Failed: Session expired. Please login again.",
	}, lines(out.String()))
}
