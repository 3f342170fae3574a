package exec

import (
	"context"
	"fmt"

	"github.com/fwojciec/yoga"
)

// Interface compliance check.
var _ yoga.OrientationLocker = (*CommandLocker)(nil)

// CommandLocker pins orientation by running device commands.
type CommandLocker struct {
	// LockCommands lists the commands to run per orientation, in order.
	LockCommands map[yoga.Orientation][][]string
	// UnlockCommands restore automatic rotation.
	UnlockCommands [][]string
	// Run executes each command. Defaults to [Run].
	Run Runner
}

// ADBLocker returns a CommandLocker for an Android device attached over adb.
// Locking disables auto-rotate and forces the requested rotation; unlocking
// re-enables auto-rotate.
func ADBLocker(serial string) *CommandLocker {
	adb := func(args ...string) []string {
		cmd := []string{"adb"}
		if serial != "" {
			cmd = append(cmd, "-s", serial)
		}
		return append(cmd, args...)
	}
	rotation := func(r string) [][]string {
		return [][]string{
			adb("shell", "settings", "put", "system", "accelerometer_rotation", "0"),
			adb("shell", "settings", "put", "system", "user_rotation", r),
		}
	}
	return &CommandLocker{
		LockCommands: map[yoga.Orientation][][]string{
			yoga.OrientationPortrait:  rotation("0"),
			yoga.OrientationLandscape: rotation("1"),
		},
		UnlockCommands: [][]string{
			adb("shell", "settings", "put", "system", "accelerometer_rotation", "1"),
		},
		Run: Run,
	}
}

// Lock runs the commands configured for o.
func (l *CommandLocker) Lock(ctx context.Context, o yoga.Orientation) error {
	cmds, ok := l.LockCommands[o]
	if !ok {
		return fmt.Errorf("exec: no lock command for %s: %w", o, yoga.ErrValidation)
	}
	return l.runAll(ctx, cmds)
}

// Unlock runs the unlock commands.
func (l *CommandLocker) Unlock(ctx context.Context) error {
	return l.runAll(ctx, l.UnlockCommands)
}

func (l *CommandLocker) runAll(ctx context.Context, cmds [][]string) error {
	run := l.Run
	if run == nil {
		run = Run
	}
	for _, c := range cmds {
		if len(c) == 0 {
			continue
		}
		if err := run(ctx, c[0], c[1:]...); err != nil {
			return fmt.Errorf("exec: orientation: %w", err)
		}
	}
	return nil
}
