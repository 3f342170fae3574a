// Package json persists the admin [yoga.Session] to disk as JSON.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/yoga"
)

// envelope is the v1 wire format for a persisted session.
type envelope struct {
	Version      int       `json:"version"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	BaseURL      string    `json:"base_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// MarshalSession serializes a Session to JSON in v1 envelope format.
func MarshalSession(s yoga.Session) ([]byte, error) {
	return json.MarshalIndent(envelope{
		Version:      1,
		Username:     s.Username,
		Role:         string(s.Role),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		BaseURL:      s.BaseURL,
		CreatedAt:    s.CreatedAt,
	}, "", "  ")
}

// UnmarshalSession deserializes a Session from JSON in v1 envelope format.
func UnmarshalSession(data []byte) (yoga.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return yoga.Session{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return yoga.Session{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	return yoga.Session{
		Username:     env.Username,
		Role:         yoga.Role(env.Role),
		AccessToken:  env.AccessToken,
		RefreshToken: env.RefreshToken,
		BaseURL:      env.BaseURL,
		CreatedAt:    env.CreatedAt,
	}, nil
}

// Save writes a Session to a JSON file, creating parent directories as needed.
// The file holds bearer tokens and is written with owner-only permissions.
func Save(path string, s yoga.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Session from a JSON file. A missing file yields an error
// matching os.ErrNotExist.
func Load(path string) (yoga.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return yoga.Session{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalSession(data)
}

// Remove deletes a saved session. Removing a missing session is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
