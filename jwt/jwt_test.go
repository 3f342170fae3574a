package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/fwojciec/yoga"
	"github.com/fwojciec/yoga/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims gojwt.Claims) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestInspector_Inspect(t *testing.T) {
	t.Parallel()

	t.Run("decodes subject role and times", func(t *testing.T) {
		t.Parallel()
		issued := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
		token := sign(t, gojwt.MapClaims{
			"sub":  "admin3",
			"role": "ADMIN",
			"iat":  issued.Unix(),
			"exp":  issued.Add(15 * time.Minute).Unix(),
		})

		info, err := jwt.New().Inspect(token)
		require.NoError(t, err)
		assert.Equal(t, "admin3", info.Subject)
		assert.Equal(t, yoga.RoleAdmin, info.Role)
		assert.True(t, info.IssuedAt.Equal(issued))
		assert.True(t, info.ExpiresAt.Equal(issued.Add(15*time.Minute)))
	})

	t.Run("expired tokens still decode", func(t *testing.T) {
		t.Parallel()
		token := sign(t, gojwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()})

		info, err := jwt.New().Inspect(token)
		require.NoError(t, err)
		assert.True(t, info.Expired(time.Now()))
	})

	t.Run("missing times are zero", func(t *testing.T) {
		t.Parallel()
		info, err := jwt.New().Inspect(sign(t, gojwt.MapClaims{"sub": "u"}))
		require.NoError(t, err)
		assert.True(t, info.IssuedAt.IsZero())
		assert.True(t, info.ExpiresAt.IsZero())
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		_, err := jwt.New().Inspect("")
		assert.ErrorIs(t, err, yoga.ErrValidation)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		_, err := jwt.New().Inspect("not.a.jwt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt:")
	})
}
