// Command yogactl runs the admin and debug runbooks of the yoga attendance
// backend and plays practice videos behind a full-screen overlay.
//
// Usage:
//
//	yogactl [--api-url URL] [--timeout D] [--verbose] <command> [flags]
//
// Environment (a .env file in the working directory is loaded first):
//
//	YOGA_API_URL      API root (default http://localhost:8080/api/v1)
//	YOGA_SESSION      saved admin session (default ~/.yoga/session.json)
//	YOGA_PLAYER       video player command (default mpv)
//	YOGA_ORIENTATION  orientation lock: none, adb (default none)
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "yogactl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is the normal case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	home, err := homeDir(os.Getenv, os.UserHomeDir)
	if err != nil {
		return err
	}
	cfg := envConfig(os.Getenv, home)

	return newApp(cfg, os.Stdout, os.Stderr).execute(ctx, os.Args[1:])
}

// homeDir returns the directory that anchors the default session path. It is
// only required when YOGA_SESSION does not name the session file.
func homeDir(getenv func(string) string, userHomeDir func() (string, error)) (string, error) {
	home, err := userHomeDir()
	if err != nil {
		if getenv("YOGA_SESSION") != "" {
			return "", nil
		}
		return "", fmt.Errorf("locate default session file (set YOGA_SESSION): %w", err)
	}
	return home, nil
}
