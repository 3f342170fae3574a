package exec

import (
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/fwojciec/yoga"
	"go.uber.org/zap"
)

// Interface compliance checks.
var (
	_ yoga.PlayerOpener = (*Opener)(nil)
	_ yoga.Player       = (*Process)(nil)
)

const (
	// DefaultPlayer is the player command used when none is configured.
	DefaultPlayer = "mpv"

	stderrTail  = 16 * 1024
	releaseWait = 5 * time.Second
)

// DefaultPlayerArgs start mpv fullscreen with its on-screen controls.
var DefaultPlayerArgs = []string{"--fs", "--force-window=immediate"}

// Opener acquires players by preparing an external player process. The
// source locator is appended as the last argument.
type Opener struct {
	Command string
	Args    []string
	Logger  *zap.Logger
}

// NewOpener creates an [Opener] for the given player command.
func NewOpener(command string, args ...string) *Opener {
	return &Opener{Command: command, Args: args, Logger: zap.NewNop()}
}

// Open checks that the player exists and prepares a process for src. The
// process does not start until Play.
func (o *Opener) Open(_ context.Context, src yoga.Source) (yoga.Player, error) {
	if src == "" {
		return nil, fmt.Errorf("exec: empty source: %w", yoga.ErrValidation)
	}
	path, err := osexec.LookPath(o.Command)
	if err != nil {
		return nil, fmt.Errorf("exec: player %q: %w", o.Command, err)
	}
	args := append(append([]string(nil), o.Args...), Target(src))
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Process{
		path:   path,
		args:   args,
		logger: logger.With(zap.String("source", src.String())),
		stderr: newTailBuffer(stderrTail),
		done:   make(chan struct{}),
	}, nil
}

// Target returns what the player is handed for src: YouTube sources become a
// canonical watch URL; everything else passes through.
func Target(src yoga.Source) string {
	if id, ok := src.YouTubeID(); ok {
		return "https://www.youtube.com/watch?v=" + id
	}
	return src.String()
}

// Process is a player handle backed by an external process running in its
// own process group.
type Process struct {
	path   string
	args   []string
	logger *zap.Logger
	stderr *tailBuffer

	mu       sync.Mutex
	cmd      *osexec.Cmd
	released bool
	done     chan struct{} // closed when the started process exits
	waitErr  error
}

// Play starts the player. Calling Play on a playing process is a no-op.
func (p *Process) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return yoga.ErrPlaybackClosed
	}
	if p.cmd != nil {
		return nil
	}

	cmd := osexec.Command(p.path, p.args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stderr = p.stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("exec: start player: %w", err)
	}
	p.cmd = cmd
	p.logger.Debug("player started", zap.Int("pid", cmd.Process.Pid))

	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		p.waitErr = err
		p.mu.Unlock()
		close(p.done)
	}()
	return nil
}

// Done is closed when the player process exits, whether on its own or
// because it was released. It never closes if Play was not called.
func (p *Process) Done() <-chan struct{} { return p.done }

// Err reports why the player exited, including the tail of its stderr when
// it failed. It returns nil while the player is running.
func (p *Process) Err() error {
	select {
	case <-p.done:
	default:
		return nil
	}
	p.mu.Lock()
	err := p.waitErr
	released := p.released
	p.mu.Unlock()
	if err == nil || released {
		return nil
	}
	if tail := p.stderr.lastLines(5); tail != "" {
		return fmt.Errorf("exec: player exited: %w: %s", err, tail)
	}
	return fmt.Errorf("exec: player exited: %w", err)
}

// Release stops the player process group: SIGTERM first, SIGKILL if it has
// not exited within a few seconds. It waits for the process to be reaped.
// Subsequent calls are no-ops.
func (p *Process) Release() error {
	p.mu.Lock()
	if p.released {
		p.mu.Unlock()
		return nil
	}
	p.released = true
	cmd := p.cmd
	p.mu.Unlock()

	if cmd == nil {
		return nil
	}

	select {
	case <-p.done:
		p.logger.Debug("player already exited")
		return nil
	default:
	}

	pgid := -cmd.Process.Pid
	if err := syscall.Kill(pgid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("exec: stop player: %w", err)
	}
	timer := time.NewTimer(releaseWait)
	defer timer.Stop()
	select {
	case <-p.done:
	case <-timer.C:
		p.logger.Warn("player ignored SIGTERM, killing")
		_ = syscall.Kill(pgid, syscall.SIGKILL)
		<-p.done
	}
	p.logger.Debug("player released")
	return nil
}

// Pid returns the player's process id, or 0 before Play.
func (p *Process) Pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}
