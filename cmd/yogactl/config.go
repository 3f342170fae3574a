package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/yoga"
	"github.com/fwojciec/yoga/attendance"
	"github.com/fwojciec/yoga/exec"
)

const defaultTimeout = 30 * time.Second

// config is the resolved configuration. Env supplies the defaults; flags
// override them.
type config struct {
	APIURL      string
	SessionPath string
	Player      string
	PlayerArgs  []string
	Orientation string
	ADBSerial   string
	Timeout     time.Duration
	Verbose     bool
}

// envConfig reads the configuration from the environment. home is the
// user's home directory and anchors the default session path.
func envConfig(getenv func(string) string, home string) config {
	cfg := config{
		APIURL:      attendance.DefaultBaseURL,
		SessionPath: filepath.Join(home, ".yoga", "session.json"),
		Player:      exec.DefaultPlayer,
		PlayerArgs:  exec.DefaultPlayerArgs,
		Orientation: "none",
		Timeout:     defaultTimeout,
	}
	if v := getenv("YOGA_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := getenv("YOGA_SESSION"); v != "" {
		cfg.SessionPath = v
	}
	if fields := strings.Fields(getenv("YOGA_PLAYER")); len(fields) > 0 {
		cfg.Player, cfg.PlayerArgs = fields[0], fields[1:]
	}
	if v := getenv("YOGA_ORIENTATION"); v != "" {
		cfg.Orientation = v
	}
	if v := getenv("YOGA_ADB_SERIAL"); v != "" {
		cfg.ADBSerial = v
	}
	return cfg
}

// locker returns the orientation locker named by cfg.Orientation.
func (c config) locker() (yoga.OrientationLocker, error) {
	switch c.Orientation {
	case "", "none":
		return yoga.NopLocker{}, nil
	case "adb":
		return exec.ADBLocker(c.ADBSerial), nil
	default:
		return nil, fmt.Errorf("unknown orientation lock %q (want none or adb): %w", c.Orientation, yoga.ErrValidation)
	}
}
