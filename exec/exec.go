// Package exec drives external programs on behalf of playback: the video
// player process that renders a source, and the device commands that pin the
// screen orientation while it plays.
package exec

import (
	"context"
	"fmt"
	osexec "os/exec"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Runner runs a command to completion. It returns an error describing the
// command's output when it exits non-zero.
type Runner func(ctx context.Context, name string, args ...string) error

// Run is the default Runner.
func Run(ctx context.Context, name string, args ...string) error {
	out, err := osexec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(ansi.Strip(string(out)))
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return nil
}
