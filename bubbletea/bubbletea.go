// Package bubbletea provides the full-screen Bubble Tea overlay shown while a
// video source plays.
package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/yoga"
)

// exiter is implemented by players that can report their own exit.
type exiter interface {
	Done() <-chan struct{}
	Err() error
}

// Watch plays src behind the overlay until it is dismissed, the player
// exits, or ctx is cancelled. The playback is released on every path before
// Watch returns. onClose, if non-nil, runs exactly once: when the user
// dismisses the overlay, or after release on any other path.
func Watch(ctx context.Context, opener yoga.PlayerOpener, locker yoga.OrientationLocker, src yoga.Source, palette yoga.Palette, onClose func(), opts ...tea.ProgramOption) (err error) {
	var once sync.Once
	closeOnce := func() {
		if onClose != nil {
			once.Do(onClose)
		}
	}

	pb, err := yoga.StartPlayback(ctx, opener, locker, src)
	if err != nil {
		closeOnce()
		return fmt.Errorf("bubbletea: %w", err)
	}
	defer func() {
		if cerr := pb.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("bubbletea: %w", cerr))
		}
		closeOnce()
	}()

	modelOpts := []Option{WithOnClose(closeOnce)}
	if p, ok := pb.Player().(exiter); ok {
		modelOpts = append(modelOpts, WithPlayerDone(p.Done(), p.Err))
	}
	m := New(src, palette, modelOpts...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	go func() {
		<-ctx.Done()
		prog.Quit()
	}()

	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("bubbletea: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fmt.Errorf("bubbletea: %w", fm.Err())
	}
	return nil
}
