package mock

import (
	"context"

	"github.com/fwojciec/yoga"
)

// Interface compliance checks.
var (
	_ yoga.Player            = (*Player)(nil)
	_ yoga.PlayerOpener      = (*PlayerOpener)(nil)
	_ yoga.OrientationLocker = (*OrientationLocker)(nil)
)

// Player is a test double for yoga.Player.
type Player struct {
	PlayFn    func() error
	ReleaseFn func() error
}

// Play delegates to PlayFn.
func (p *Player) Play() error {
	return p.PlayFn()
}

// Release delegates to ReleaseFn.
func (p *Player) Release() error {
	return p.ReleaseFn()
}

// PlayerOpener is a test double for yoga.PlayerOpener.
type PlayerOpener struct {
	OpenFn func(ctx context.Context, src yoga.Source) (yoga.Player, error)
}

// Open delegates to OpenFn.
func (o *PlayerOpener) Open(ctx context.Context, src yoga.Source) (yoga.Player, error) {
	return o.OpenFn(ctx, src)
}

// OrientationLocker is a test double for yoga.OrientationLocker.
type OrientationLocker struct {
	LockFn   func(ctx context.Context, o yoga.Orientation) error
	UnlockFn func(ctx context.Context) error
}

// Lock delegates to LockFn.
func (l *OrientationLocker) Lock(ctx context.Context, o yoga.Orientation) error {
	return l.LockFn(ctx, o)
}

// Unlock delegates to UnlockFn.
func (l *OrientationLocker) Unlock(ctx context.Context) error {
	return l.UnlockFn(ctx)
}
