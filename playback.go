package yoga

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Player is an external library's handle on an active playback session.
type Player interface {
	Play() error
	Release() error
}

// PlayerOpener acquires a Player bound to a source.
type PlayerOpener interface {
	Open(ctx context.Context, src Source) (Player, error)
}

// Orientation is a device screen orientation.
type Orientation int

const (
	OrientationPortrait Orientation = iota
	OrientationLandscape
)

func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationLandscape:
		return "landscape"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// OrientationLocker pins the device orientation while video is on screen.
type OrientationLocker interface {
	Lock(ctx context.Context, o Orientation) error
	Unlock(ctx context.Context) error
}

// NopLocker is an OrientationLocker for displays without an orientation,
// such as a desktop monitor.
type NopLocker struct{}

func (NopLocker) Lock(context.Context, Orientation) error { return nil }
func (NopLocker) Unlock(context.Context) error            { return nil }

// Playback pairs an acquired player with the orientation lock taken for it.
// Close reverses both exactly once.
type Playback struct {
	src    Source
	player Player
	locker OrientationLocker

	once sync.Once
	err  error
}

// StartPlayback acquires a player for src, starts it, and locks the display
// to landscape. If any step fails, the steps already taken are undone before
// the error is returned, so the caller owns nothing on error.
func StartPlayback(ctx context.Context, opener PlayerOpener, locker OrientationLocker, src Source) (_ *Playback, err error) {
	player, err := opener.Open(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("open player: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, player.Release())
		}
	}()

	if err := player.Play(); err != nil {
		return nil, fmt.Errorf("play %s: %w", src, err)
	}
	if err := locker.Lock(ctx, OrientationLandscape); err != nil {
		return nil, fmt.Errorf("lock orientation: %w", err)
	}

	return &Playback{src: src, player: player, locker: locker}, nil
}

// Source returns the source being played.
func (p *Playback) Source() Source { return p.src }

// Player returns the acquired player.
func (p *Playback) Player() Player { return p.player }

// Close unlocks the orientation and releases the player. Both run even if
// the first fails. Subsequent calls return the first call's result.
func (p *Playback) Close() error {
	p.once.Do(func() {
		// Unlock must not be skipped because the caller's context is gone.
		unlockErr := p.locker.Unlock(context.Background())
		if unlockErr != nil {
			unlockErr = fmt.Errorf("unlock orientation: %w", unlockErr)
		}
		releaseErr := p.player.Release()
		if releaseErr != nil {
			releaseErr = fmt.Errorf("release player: %w", releaseErr)
		}
		p.err = errors.Join(unlockErr, releaseErr)
	})
	return p.err
}
