package runbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/yoga"
)

// TestRegistration registers an account and, if that succeeds, logs in with
// it, printing each response in full.
func (r *Runner) TestRegistration(ctx context.Context, reg yoga.Registration) error {
	r.println("Testing registration API...")
	if r.validator != nil {
		if err := r.validator.ValidateRegistration(reg); err != nil {
			return r.fail("test registration", "Invalid registration", err)
		}
	}

	resp, err := r.service.Register(ctx, reg)
	if err != nil {
		if apiErr, ok := apiError(err); ok {
			r.printf("Status: %d\n", apiErr.Status)
			r.printf("Response: %s\n", pretty(apiErr.Body))
			return fmt.Errorf("runbook: test registration: %w", err)
		}
		return r.fail("test registration", "Error", err)
	}
	r.printf("Status: %d\n", resp.Status)
	r.printf("Response: %s\n", pretty(resp.Body))
	r.println()
	r.println("Registration successful!")

	r.println()
	r.println("Testing login...")
	res, err := r.service.Login(ctx, reg.Credentials())
	if err != nil {
		if apiErr, ok := apiError(err); ok {
			r.printf("Login Status: %d\n", apiErr.Status)
			r.printf("Login Response: %s\n", pretty(apiErr.Body))
			return fmt.Errorf("runbook: test registration: %w", err)
		}
		return r.fail("test registration", "Error", err)
	}
	r.printf("Login Status: %d\n", res.Status)
	r.printf("Login Response: %s\n", pretty(res.Raw))
	return nil
}

// Smoke checks that the backend is reachable, that registration answers, and
// that login answers. The steps are independent: each reports its own
// outcome and the next runs regardless. An HTTP error answer is reported but
// counts as the backend working; only unreachable endpoints fail.
func (r *Runner) Smoke(ctx context.Context, reg yoga.Registration, admin yoga.Credentials) error {
	var errs []error

	r.println("Testing backend health...")
	status, err := r.service.Ping(ctx)
	if err != nil {
		errs = append(errs, r.fail("smoke: health", "Backend not reachable", err))
	} else {
		r.printf("Health check: %d\n", status)
	}

	r.println()
	r.println("Testing registration...")
	resp, err := r.service.Register(ctx, reg)
	switch apiErr, isAPI := apiError(err); {
	case err == nil:
		r.printf("Register response: %d %s\n", resp.Status, compact(resp.Body))
	case isAPI:
		r.printf("Register response: %d %s\n", apiErr.Status, compact(apiErr.Body))
	default:
		errs = append(errs, r.fail("smoke: register", "Register error", err))
	}

	r.println()
	r.println("Testing login...")
	res, err := r.service.Login(ctx, admin)
	switch apiErr, isAPI := apiError(err); {
	case err == nil:
		r.printf("Login response: %d %s\n", res.Status, compact(res.Raw))
	case isAPI:
		r.printf("Login response: %d %s\n", apiErr.Status, compact(apiErr.Body))
	default:
		errs = append(errs, r.fail("smoke: login", "Login error", err))
	}

	return errors.Join(errs...)
}
