// Package jwt implements [yoga.TokenInspector] with golang-jwt.
//
// Tokens are decoded without signature verification: the inspector exists to
// show an operator what the backend issued, not to authenticate anyone.
package jwt

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/fwojciec/yoga"
)

// Interface compliance check.
var _ yoga.TokenInspector = (*Inspector)(nil)

// claims covers the registered claims plus the role claim the backend adds.
type claims struct {
	Role string `json:"role"`
	gojwt.RegisteredClaims
}

// Inspector decodes access tokens.
type Inspector struct {
	parser *gojwt.Parser
}

// New creates an [Inspector].
func New() *Inspector {
	return &Inspector{parser: gojwt.NewParser()}
}

// Inspect decodes the token's claims.
func (i *Inspector) Inspect(token string) (yoga.TokenInfo, error) {
	if token == "" {
		return yoga.TokenInfo{}, fmt.Errorf("jwt: empty token: %w", yoga.ErrValidation)
	}
	var c claims
	if _, _, err := i.parser.ParseUnverified(token, &c); err != nil {
		return yoga.TokenInfo{}, fmt.Errorf("jwt: %w", err)
	}
	return yoga.TokenInfo{
		Subject:   c.Subject,
		Role:      yoga.Role(c.Role),
		IssuedAt:  timeOf(c.IssuedAt),
		ExpiresAt: timeOf(c.ExpiresAt),
	}, nil
}

func timeOf(d *gojwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}
