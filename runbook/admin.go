package runbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/yoga"
)

// Default credentials of the admin created by the backend's fix endpoint.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "Admin123"
)

// ErrNotAdmin is returned when an account expected to be an administrator
// logs in with another role.
var ErrNotAdmin = errors.New("account is not an administrator")

// SetupAdmin asks the backend to create the default admin account.
func (r *Runner) SetupAdmin(ctx context.Context) error {
	r.println("Creating admin user...")
	resp, err := r.service.CreateAdmin(ctx)
	if err != nil {
		if apiErr, ok := apiError(err); ok {
			r.printf("Response: %s\n", compact(apiErr.Body))
			r.printf("Failed: %s\n", compact(apiErr.Body))
			return fmt.Errorf("runbook: setup admin: %w", err)
		}
		err = r.fail("setup admin", "Error", err)
		r.println("Make sure the backend is running!")
		return err
	}

	r.printf("Response: %s\n", compact(resp.Body))
	r.println()
	r.println("SUCCESS! You can now log in as the admin user.")
	r.writeFields("",
		field{"Username", DefaultAdminUsername},
		field{"Password", DefaultAdminPassword},
	)
	return nil
}

// Login logs in and prints the account details and token claims.
func (r *Runner) Login(ctx context.Context, c yoga.Credentials) (yoga.LoginResult, error) {
	if err := c.Validate(); err != nil {
		return yoga.LoginResult{}, r.fail("login", "Invalid credentials", err)
	}
	r.printf("Logging in as %s...\n", c.Username)
	res, err := r.service.Login(ctx, c)
	if err != nil {
		return yoga.LoginResult{}, r.fail("login", "Login failed", err)
	}
	r.println()
	r.println("LOGIN SUCCESSFUL!")
	r.printDetails(res)
	return res, nil
}

// CreateAccount registers an account, waits for the backend to settle, logs
// in with it, and prints the resulting details. An account that already
// exists is not a failure: its credentials and the SQL that promotes it are
// printed instead.
func (r *Runner) CreateAccount(ctx context.Context, reg yoga.Registration) error {
	r.printf("Creating account %s...\n", reg.Username)
	r.writeFields("",
		field{"Username", reg.Username},
		field{"Password", reg.Password},
		field{"Email", reg.Email},
	)
	if r.validator != nil {
		if err := r.validator.ValidateRegistration(reg); err != nil {
			return r.fail("create account", "Invalid registration", err)
		}
	}

	resp, err := r.service.Register(ctx, reg)
	if err != nil {
		if errors.Is(err, yoga.ErrAlreadyExists) {
			r.println()
			r.println("User already exists! Use these credentials:")
			r.writeFields("",
				field{"Username", reg.Username},
				field{"Password", reg.Password},
			)
			r.println()
			r.println("To make it an approved ADMIN, run this SQL:")
			r.println(promoteSQL(reg.Username))
			return nil
		}
		if apiErr, ok := apiError(err); ok {
			r.println()
			r.println("Registration failed!")
			r.printf("Error: %s\n", compact(apiErr.Body))
			return fmt.Errorf("runbook: create account: %w", err)
		}
		return r.fail("create account", "Error", err)
	}

	r.println()
	r.printf("SUCCESS! %s created!\n", reg.Username)
	r.printf("Response: %s\n", compact(resp.Body))

	res, err := r.loginAfterSettle(ctx, reg.Credentials())
	if err != nil {
		return r.fail("create account", "Login failed", err)
	}

	r.println()
	r.println("LOGIN SUCCESSFUL!")
	r.printDetails(res)

	if res.Role != yoga.RoleAdmin {
		r.println()
		r.printf("WARNING: %s has %s role (expected %s)\n", reg.Username, res.Role, yoga.RoleAdmin)
		r.println("Run this SQL, then log out and back in to get ADMIN access:")
		r.println(promoteSQL(reg.Username))
	}

	r.println()
	r.println("=== LOGIN CREDENTIALS ===")
	r.writeFields("",
		field{"Username", reg.Username},
		field{"Password", reg.Password},
		field{"Role", string(res.Role)},
	)
	return nil
}

// TestAutoAdmin registers a throwaway account whose username starts with
// "admin" and checks that the backend grants it the ADMIN role.
func (r *Runner) TestAutoAdmin(ctx context.Context) error {
	stamp := r.now().UnixMilli()
	reg := yoga.Registration{
		Name:     "Test Admin",
		Username: fmt.Sprintf("admin%d", stamp),
		Email:    fmt.Sprintf("admin%d@example.com", stamp),
		Phone:    "1234567890",
		Password: "Test1234",
	}

	r.println("Testing auto-ADMIN feature...")
	r.printf("Username: %s (starts with \"admin\")\n", reg.Username)

	// A refused registration is reported and the login is attempted anyway;
	// only a transport failure stops the check.
	resp, err := r.service.Register(ctx, reg)
	body := resp.Body
	if err != nil {
		apiErr, ok := apiError(err)
		if !ok {
			return r.fail("test auto admin", "Registration failed", err)
		}
		body = apiErr.Body
	}
	r.println()
	r.printf("Registered: %s\n", compact(body))

	res, err := r.loginAfterSettle(ctx, reg.Credentials())
	if err != nil {
		return r.fail("test auto admin", "Login failed", err)
	}
	r.println()
	r.println("Login successful!")
	r.printf("Role: %s\n", res.Role)

	r.println()
	if res.Role != yoga.RoleAdmin {
		r.printf("FAILED! User has role: %s\n", res.Role)
		r.println("Auto-ADMIN is NOT working yet. The deployment may not be finished.")
		return fmt.Errorf("runbook: test auto admin: %s has role %s: %w", reg.Username, res.Role, ErrNotAdmin)
	}
	r.println("SUCCESS! Auto-ADMIN is working!")
	r.println(`Users with a username starting with "admin" are automatically ADMIN.`)
	return nil
}

func (r *Runner) loginAfterSettle(ctx context.Context, c yoga.Credentials) (yoga.LoginResult, error) {
	r.println()
	r.printf("Waiting %s...\n", r.settle)
	if err := r.wait(ctx, r.settle); err != nil {
		return yoga.LoginResult{}, err
	}
	r.println("Testing login...")
	return r.service.Login(ctx, c)
}

// printDetails prints the account details of a login and, when a token
// inspector is configured, the claims of the access token.
func (r *Runner) printDetails(res yoga.LoginResult) {
	token := "Missing"
	if res.AccessToken != "" {
		token = "Generated ✓"
	}
	r.println("User Details:")
	r.writeFields("  ",
		field{"Username", res.Username},
		field{"Name", res.Name},
		field{"Role", string(res.Role)},
		field{"Token", token},
	)

	if r.tokens == nil || res.AccessToken == "" {
		return
	}
	info, err := r.tokens.Inspect(res.AccessToken)
	if err != nil {
		r.printf("  Token claims unreadable: %s\n", message(err))
		return
	}
	expires := "never"
	if !info.ExpiresAt.IsZero() {
		expires = info.ExpiresAt.UTC().Format(time.RFC3339)
		if info.Expired(r.now()) {
			expires += " (expired)"
		}
	}
	r.println("Token Claims:")
	r.writeFields("  ",
		field{"Subject", info.Subject},
		field{"Role", string(info.Role)},
		field{"Issued", formatTime(info.IssuedAt)},
		field{"Expires", expires},
	)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
