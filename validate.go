package yoga

import "fmt"

// Validate checks that both login fields are present.
// Registration payloads are checked by a RegistrationValidator.
func (c Credentials) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is required: %w", ErrValidation)
	}
	if c.Password == "" {
		return fmt.Errorf("password is required: %w", ErrValidation)
	}
	return nil
}
