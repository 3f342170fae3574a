package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/fwojciec/yoga"
	"github.com/fwojciec/yoga/attendance"
	yogajson "github.com/fwojciec/yoga/json"
	"github.com/fwojciec/yoga/jwt"
	"github.com/fwojciec/yoga/runbook"
	"github.com/fwojciec/yoga/validator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries what every subcommand needs.
type app struct {
	cfg       config
	out       io.Writer
	errOut    io.Writer
	logger    *zap.Logger
	newLogger func(verbose bool) (*zap.Logger, error)
	now       func() time.Time
	settle    time.Duration
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func newApp(cfg config, out, errOut io.Writer) *app {
	return &app{
		cfg:       cfg,
		out:       out,
		errOut:    errOut,
		logger:    zap.NewNop(),
		newLogger: newLogger,
		now:       time.Now,
		settle:    runbook.DefaultSettle,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "yogactl",
		Short: "Admin and debug tooling for the yoga attendance backend",
		Long: `yogactl runs the operator runbooks against the attendance backend
(pending users, admin setup, registration and login checks), manages the
saved admin session, and plays practice videos behind a full-screen overlay.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.newLogger(a.cfg.Verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.APIURL, "api-url", a.cfg.APIURL, "API root of the attendance backend")
	pf.DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "per-request timeout")
	pf.BoolVarP(&a.cfg.Verbose, "verbose", "v", a.cfg.Verbose, "log requests at debug level")
	pf.StringVar(&a.cfg.SessionPath, "session", a.cfg.SessionPath, "path of the saved admin session")

	root.AddCommand(
		a.checkUsersCmd(),
		a.setupAdminCmd(),
		a.testRegistrationCmd(),
		a.smokeCmd(),
		a.testAutoAdminCmd(),
		a.createAccountCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.approveCmd(),
		a.rejectCmd(),
		a.deleteCmd(),
		a.playCmd(),
		a.themeCmd(),
	)
	return root
}

// execute runs the command tree with args and flushes the logger, including
// when the command failed.
func (a *app) execute(ctx context.Context, args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	_ = a.logger.Sync()
	return err
}

// client builds the backend client. With authenticated set, the saved
// session's tokens are attached when they were issued by the configured API,
// and tokens the client refreshes are written back to the session file.
func (a *app) client(authenticated bool) *attendance.Client {
	opts := []attendance.Option{
		attendance.WithHTTPClient(&http.Client{Timeout: a.cfg.Timeout}),
		attendance.WithLogger(a.logger),
	}
	if authenticated {
		if s, ok := a.session(); ok {
			opts = append(opts, attendance.WithToken(s.AccessToken))
			if s.RefreshToken != "" {
				opts = append(opts, attendance.WithRefresh(s.RefreshToken, func(p yoga.TokenPair) error {
					s = s.WithTokens(p)
					if err := yogajson.Save(a.cfg.SessionPath, s); err != nil {
						return err
					}
					a.logger.Debug("session refreshed", zap.String("path", a.cfg.SessionPath))
					return nil
				}))
			}
		}
	}
	return attendance.New(a.cfg.APIURL, opts...)
}

// session loads the saved session if it belongs to the configured API.
func (a *app) session() (yoga.Session, bool) {
	s, err := yogajson.Load(a.cfg.SessionPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.logger.Debug("no saved session", zap.String("path", a.cfg.SessionPath))
		return yoga.Session{}, false
	case err != nil:
		a.logger.Warn("ignoring unreadable session", zap.String("path", a.cfg.SessionPath), zap.Error(err))
		return yoga.Session{}, false
	}
	base := attendance.New(a.cfg.APIURL).BaseURL()
	if s.BaseURL != base {
		a.logger.Warn("saved session belongs to another API",
			zap.String("session_api", s.BaseURL), zap.String("api", base))
		return yoga.Session{}, false
	}
	if !s.IsAdmin() {
		a.logger.Warn("saved session is not an admin session", zap.String("username", s.Username))
	}
	return s, true
}

// authenticated runs fn against a runner using the saved session. A session
// the backend refuses to refresh is forgotten.
func (a *app) authenticated(fn func(*runbook.Runner) error) error {
	err := fn(a.runner(a.client(true)))
	if errors.Is(err, yoga.ErrSessionExpired) {
		if rmErr := yogajson.Remove(a.cfg.SessionPath); rmErr != nil {
			a.logger.Warn("failed to remove expired session", zap.Error(rmErr))
		} else {
			a.logger.Info("removed expired session", zap.String("path", a.cfg.SessionPath))
		}
	}
	return err
}

func (a *app) runner(svc yoga.AuthService) *runbook.Runner {
	return runbook.New(svc, a.out,
		runbook.WithValidator(validator.New(validator.WithLegacyPasswords())),
		runbook.WithTokenInspector(jwt.New()),
		runbook.WithClock(a.now),
		runbook.WithSettle(a.settle),
	)
}
