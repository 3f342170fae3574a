package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/yoga"
	"github.com/fwojciec/yoga/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	t.Parallel()
	t.Run("delegates to RegisterFn", func(t *testing.T) {
		t.Parallel()
		var got yoga.Registration
		s := mock.AuthService{
			RegisterFn: func(ctx context.Context, r yoga.Registration) (yoga.Response, error) {
				got = r
				return yoga.Response{Status: 200, Body: yoga.Reply{"message": "ok"}}, nil
			},
		}
		resp, err := s.Register(context.Background(), yoga.Registration{Username: "testuser"})
		require.NoError(t, err)
		assert.Equal(t, "testuser", got.Username)
		assert.Equal(t, "ok", resp.Body.Message())
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("api error")
		s := mock.AuthService{
			RegisterFn: func(ctx context.Context, r yoga.Registration) (yoga.Response, error) {
				return yoga.Response{}, wantErr
			},
		}
		_, err := s.Register(context.Background(), yoga.Registration{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when RegisterFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.AuthService{}
		assert.Panics(t, func() {
			_, _ = s.Register(context.Background(), yoga.Registration{})
		})
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	s := mock.AuthService{
		LoginFn: func(ctx context.Context, c yoga.Credentials) (yoga.LoginResult, error) {
			return yoga.LoginResult{Username: c.Username, Role: yoga.RoleAdmin}, nil
		},
	}
	got, err := s.Login(context.Background(), yoga.Credentials{Username: "admin", Password: "Admin123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, yoga.RoleAdmin, got.Role)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	t.Parallel()
	s := mock.AuthService{
		RefreshFn: func(ctx context.Context, token string) (yoga.TokenPair, error) {
			return yoga.TokenPair{AccessToken: "new", RefreshToken: token}, nil
		},
		LogoutFn: func(ctx context.Context, username string) (yoga.Response, error) {
			return yoga.Response{Status: 200, Body: yoga.Reply{"message": "bye " + username}}, nil
		},
	}
	pair, err := s.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, yoga.TokenPair{AccessToken: "new", RefreshToken: "r1"}, pair)

	resp, err := s.Logout(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "bye admin", resp.Body.Message())
}

func TestPlayer(t *testing.T) {
	t.Parallel()
	var played, released bool
	p := mock.Player{
		PlayFn:    func() error { played = true; return nil },
		ReleaseFn: func() error { released = true; return nil },
	}
	require.NoError(t, p.Play())
	require.NoError(t, p.Release())
	assert.True(t, played)
	assert.True(t, released)
}

func TestOrientationLocker(t *testing.T) {
	t.Parallel()
	var locked yoga.Orientation = -1
	l := mock.OrientationLocker{
		LockFn: func(ctx context.Context, o yoga.Orientation) error {
			locked = o
			return nil
		},
	}
	require.NoError(t, l.Lock(context.Background(), yoga.OrientationLandscape))
	assert.Equal(t, yoga.OrientationLandscape, locked)
	assert.Panics(t, func() { _ = l.Unlock(context.Background()) })
}
