package main

import (
	"fmt"

	"github.com/fwojciec/yoga"
	yogajson "github.com/fwojciec/yoga/json"
	"github.com/fwojciec/yoga/runbook"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// registrationFlags binds the register payload to flags with the given
// defaults.
func registrationFlags(cmd *cobra.Command, def yoga.Registration) *yoga.Registration {
	r := def
	f := cmd.Flags()
	f.StringVar(&r.Name, "name", def.Name, "full name")
	f.StringVar(&r.Username, "username", def.Username, "username")
	f.StringVar(&r.Email, "email", def.Email, "email address")
	f.StringVar(&r.Phone, "phone", def.Phone, "phone number")
	f.StringVar(&r.Password, "password", def.Password, "password")
	return &r
}

func (a *app) checkUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-users",
		Short: "List accounts awaiting approval and print the role-fix checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.authenticated(func(r *runbook.Runner) error {
				return r.CheckUsers(cmd.Context())
			})
		},
	}
}

func (a *app) setupAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup-admin",
		Short: "Ask the backend to create the default admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner(a.client(false)).SetupAdmin(cmd.Context())
		},
	}
}

func (a *app) testRegistrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-registration",
		Short: "Register an account, then log in with it",
		Args:  cobra.NoArgs,
	}
	reg := registrationFlags(cmd, yoga.Registration{
		Name:     "Test User",
		Username: "testuser123",
		Email:    "test123@example.com",
		Phone:    "1234567890",
		Password: "Test1234",
	})
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runner(a.client(false)).TestRegistration(cmd.Context(), *reg)
	}
	return cmd
}

func (a *app) smokeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Check health, registration and admin login independently",
		Args:  cobra.NoArgs,
	}
	reg := registrationFlags(cmd, yoga.Registration{
		Name:     "Test User",
		Username: "testuser",
		Email:    "test@example.com",
		Phone:    "1234567890",
		Password: "Test123",
	})
	var admin yoga.Credentials
	cmd.Flags().StringVar(&admin.Username, "admin-username", "admin", "admin username for the login check")
	cmd.Flags().StringVar(&admin.Password, "admin-password", "Admin123", "admin password for the login check")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runner(a.client(false)).Smoke(cmd.Context(), *reg, admin)
	}
	return cmd
}

func (a *app) testAutoAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-auto-admin",
		Short: `Check that usernames starting with "admin" are granted the ADMIN role`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner(a.client(false)).TestAutoAdmin(cmd.Context())
		},
	}
}

func (a *app) createAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Register an account, log in with it and report its role",
		Long: `Registers an account, waits for the backend to settle, logs in and prints
the account details and token claims. If the account already exists its
credentials are printed with the SQL that promotes it to ADMIN.`,
		Args: cobra.NoArgs,
	}
	reg := registrationFlags(cmd, yoga.Registration{
		Name:     "Admin User 3",
		Username: "admin3",
		Email:    "admin3@example.com",
		Phone:    "1122334455",
		Password: "Admin123",
	})
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runner(a.client(false)).CreateAccount(cmd.Context(), *reg)
	}
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session for the admin commands",
		Args:  cobra.NoArgs,
	}
	var c yoga.Credentials
	cmd.Flags().StringVar(&c.Username, "username", "admin", "username")
	cmd.Flags().StringVar(&c.Password, "password", "Admin123", "password")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		client := a.client(false)
		res, err := a.runner(client).Login(cmd.Context(), c)
		if err != nil {
			return err
		}
		s := yoga.NewSession(client.BaseURL(), res, a.now())
		if err := yogajson.Save(a.cfg.SessionPath, s); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		a.logger.Debug("session saved", zap.String("path", a.cfg.SessionPath))
		fmt.Fprintf(a.out, "\nSession saved to %s\n", a.cfg.SessionPath)
		if !s.IsAdmin() {
			fmt.Fprintf(a.out, "Note: %s is not an ADMIN; admin commands will be refused.\n", s.Username)
		}
		return nil
	}
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the saved session on the backend and forget it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s, ok := a.session(); ok {
				if _, err := a.client(true).Logout(cmd.Context(), s.Username); err != nil {
					// The local session is removed regardless.
					a.logger.Warn("backend logout failed", zap.String("username", s.Username), zap.Error(err))
					fmt.Fprintf(a.errOut, "Warning: backend logout failed: %v\n", err)
				}
			}
			if err := yogajson.Remove(a.cfg.SessionPath); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *app) approveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve USERNAME",
		Short: "Approve a pending account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.authenticated(func(r *runbook.Runner) error {
				return r.Approve(cmd.Context(), args[0])
			})
		},
	}
}

func (a *app) rejectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reject USERNAME",
		Short: "Reject and delete a pending account",
		Args:  cobra.ExactArgs(1),
	}
	reason := cmd.Flags().String("reason", "", "reason sent to the backend")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.authenticated(func(r *runbook.Runner) error {
			return r.Reject(cmd.Context(), args[0], *reason)
		})
	}
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete USERNAME",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.authenticated(func(r *runbook.Runner) error {
				return r.Delete(cmd.Context(), args[0])
			})
		},
	}
}
