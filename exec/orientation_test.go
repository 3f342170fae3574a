package exec_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/yoga"
	"github.com/fwojciec/yoga/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls []string
	fail  string
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	line := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, line)
	if f.fail != "" && strings.Contains(line, f.fail) {
		return errors.New("device offline")
	}
	return nil
}

func TestADBLocker(t *testing.T) {
	t.Parallel()

	t.Run("lock landscape then unlock", func(t *testing.T) {
		t.Parallel()
		var f fakeRunner
		l := exec.ADBLocker("")
		l.Run = f.run

		require.NoError(t, l.Lock(context.Background(), yoga.OrientationLandscape))
		require.NoError(t, l.Unlock(context.Background()))

		assert.Equal(t, []string{
			"adb shell settings put system accelerometer_rotation 0",
			"adb shell settings put system user_rotation 1",
			"adb shell settings put system accelerometer_rotation 1",
		}, f.calls)
	})

	t.Run("targets a device serial", func(t *testing.T) {
		t.Parallel()
		var f fakeRunner
		l := exec.ADBLocker("emulator-5554")
		l.Run = f.run

		require.NoError(t, l.Lock(context.Background(), yoga.OrientationPortrait))
		assert.Equal(t, "adb -s emulator-5554 shell settings put system user_rotation 0", f.calls[1])
	})

	t.Run("stops at the first failing command", func(t *testing.T) {
		t.Parallel()
		f := fakeRunner{fail: "accelerometer_rotation 0"}
		l := exec.ADBLocker("")
		l.Run = f.run

		err := l.Lock(context.Background(), yoga.OrientationLandscape)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "device offline")
		assert.Len(t, f.calls, 1)
	})
}

func TestCommandLocker_UnknownOrientation(t *testing.T) {
	t.Parallel()
	l := &exec.CommandLocker{}
	err := l.Lock(context.Background(), yoga.OrientationLandscape)
	assert.ErrorIs(t, err, yoga.ErrValidation)
	assert.NoError(t, l.Unlock(context.Background()))
}

func TestRun(t *testing.T) {
	t.Parallel()

	require.NoError(t, exec.Run(context.Background(), "sh", "-c", "exit 0"))

	err := exec.Run(context.Background(), "sh", "-c", "echo nope; exit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}
