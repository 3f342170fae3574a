// Package runbook implements the admin and debug scripts operators run
// against the attendance backend. Each runbook issues its requests in order,
// reports to a writer, and stops at the first failure it cannot report
// around.
package runbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/yoga"
	"github.com/mattn/go-runewidth"
)

// DefaultSettle is how long runbooks wait between registering an account
// and logging in with it.
const DefaultSettle = 2 * time.Second

// Runner runs runbooks against an [yoga.AuthService].
type Runner struct {
	service   yoga.AuthService
	validator yoga.RegistrationValidator
	tokens    yoga.TokenInspector
	out       io.Writer
	palette   yoga.Palette
	width     int
	settle    time.Duration
	wait      func(ctx context.Context, d time.Duration) error
	now       func() time.Time
}

// Option configures a [Runner].
type Option func(*Runner)

// WithValidator checks registrations before they are sent.
func WithValidator(v yoga.RegistrationValidator) Option {
	return func(r *Runner) { r.validator = v }
}

// WithTokenInspector enables printing the claims of issued tokens.
func WithTokenInspector(i yoga.TokenInspector) Option {
	return func(r *Runner) { r.tokens = i }
}

// WithPalette sets the colors used for rendered instructions.
func WithPalette(p yoga.Palette) Option {
	return func(r *Runner) { r.palette = p }
}

// WithWidth sets the wrap width of rendered instructions.
func WithWidth(w int) Option {
	return func(r *Runner) { r.width = w }
}

// WithSettle sets the register-to-login wait.
func WithSettle(d time.Duration) Option {
	return func(r *Runner) { r.settle = d }
}

// WithWait replaces the function used to wait, for tests.
func WithWait(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Runner) { r.wait = fn }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a [Runner] that reports to out.
func New(service yoga.AuthService, out io.Writer, opts ...Option) *Runner {
	r := &Runner{
		service: service,
		out:     out,
		palette: yoga.DefaultPalette(),
		width:   80,
		settle:  DefaultSettle,
		wait:    sleep,
		now:     time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// fail reports err on a single line and returns it wrapped with op.
func (r *Runner) fail(op, prefix string, err error) error {
	r.printf("%s: %s\n", prefix, message(err))
	return fmt.Errorf("runbook: %s: %w", op, err)
}

// message is the text shown for err: the backend's message for API errors,
// the innermost cause for transport errors.
func message(err error) string {
	if errors.Is(err, yoga.ErrSessionExpired) {
		return "Session expired. Please login again."
	}
	var apiErr *yoga.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// apiError returns the backend's error response, if err carries one.
func apiError(err error) (*yoga.Error, bool) {
	var apiErr *yoga.Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// pretty renders v as indented JSON.
func pretty(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// compact renders v as single-line JSON.
func compact(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// field is one labelled line of a details block.
type field struct {
	label string
	value string
}

// writeFields writes label/value pairs with the values aligned.
func (r *Runner) writeFields(indent string, fields ...field) {
	w := 0
	for _, f := range fields {
		w = max(w, runewidth.StringWidth(f.label))
	}
	for _, f := range fields {
		r.printf("%s%s %s\n", indent, runewidth.FillRight(f.label+":", w+1), f.value)
	}
}

// promoteSQL is the statement that makes username an approved admin.
func promoteSQL(username string) string {
	return fmt.Sprintf("UPDATE user SET role='ADMIN', email_verified=1, approved=1 WHERE username='%s';",
		strings.ReplaceAll(username, "'", "''"))
}
