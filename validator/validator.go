// Package validator implements [yoga.RegistrationValidator] with
// go-playground/validator, applying the same rules the mobile client checks
// before it submits the registration form.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/fwojciec/yoga"
)

// Interface compliance check.
var _ yoga.RegistrationValidator = (*Validator)(nil)

var (
	usernameRe     = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe        = regexp.MustCompile(`^[0-9]{10,15}$`)
	phoneNoiseRe   = regexp.MustCompile(`[\s\-()]`)
	specialCharsRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

type registration struct {
	Name     string `validate:"required,min=2,max=50"`
	Username string `validate:"required,username"`
	Email    string `validate:"required,mailbox"`
	Phone    string `validate:"required,phone"`
	Password string `validate:"required,min=8,password"`
}

// Validator checks registration payloads.
type Validator struct {
	validate *playground.Validate
	strict   bool
}

// Option configures a [Validator].
type Option func(*Validator)

// WithLegacyPasswords relaxes the password rule to length only. The seed
// accounts the admin scripts create (e.g. "Admin123") predate the special
// character requirement.
func WithLegacyPasswords() Option {
	return func(v *Validator) { v.strict = false }
}

// New creates a [Validator].
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
		strict:   true,
	}
	for _, o := range opts {
		o(v)
	}
	rules := map[string]playground.Func{
		"username": func(fl playground.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		},
		"mailbox": func(fl playground.FieldLevel) bool {
			return emailRe.MatchString(fl.Field().String())
		},
		"phone": func(fl playground.FieldLevel) bool {
			return phoneRe.MatchString(phoneNoiseRe.ReplaceAllString(fl.Field().String(), ""))
		},
		"password": func(fl playground.FieldLevel) bool {
			if !v.strict {
				return true
			}
			return checkPassword(fl.Field().String()) == ""
		},
	}
	for tag, fn := range rules {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validator: register %q: %v", tag, err))
		}
	}
	return v
}

// ValidateRegistration reports the first failing field with the message the
// registration form would show.
func (v *Validator) ValidateRegistration(r yoga.Registration) error {
	err := v.validate.Struct(registration{
		Name:     r.Name,
		Username: r.Username,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
	})
	if err == nil {
		return nil
	}
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validator: %w", err)
	}
	return fmt.Errorf("%s: %w", describe(verrs[0], r.Password), yoga.ErrValidation)
}

func describe(fe playground.FieldError, password string) string {
	field := fe.Field()
	if fe.Tag() == "required" {
		if field == "Phone" {
			return "Phone number is required"
		}
		return field + " is required"
	}
	switch field {
	case "Name":
		if fe.Tag() == "min" {
			return "Name must be at least 2 characters"
		}
		return "Name must be less than 50 characters"
	case "Username":
		return "Username must be 3-20 characters (letters, numbers, underscore only)"
	case "Email":
		return "Invalid email format"
	case "Phone":
		return "Invalid phone number"
	case "Password":
		if msg := checkPassword(password); msg != "" {
			return msg
		}
		return "Invalid password"
	}
	return fmt.Sprintf("%s failed %q", field, fe.Tag())
}

// checkPassword returns the first unmet complexity rule, or "".
func checkPassword(p string) string {
	switch {
	case len(p) < 8:
		return "Password must be at least 8 characters"
	case !strings.ContainsAny(p, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"):
		return "Password must contain an uppercase letter"
	case !strings.ContainsAny(p, "abcdefghijklmnopqrstuvwxyz"):
		return "Password must contain a lowercase letter"
	case !strings.ContainsAny(p, "0123456789"):
		return "Password must contain a number"
	case !specialCharsRe.MatchString(p):
		return "Password must contain a special character"
	}
	return ""
}
