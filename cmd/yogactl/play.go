package main

import (
	"fmt"

	"github.com/fwojciec/yoga"
	bt "github.com/fwojciec/yoga/bubbletea"
	"github.com/fwojciec/yoga/exec"
	"github.com/fwojciec/yoga/fs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [SOURCE...]",
		Short: "Play videos behind a full-screen overlay",
		Long: `Plays each source in turn behind a full-screen overlay. Sources are URLs
(YouTube links are recognized) or local files. With --dir, local videos
matching --pattern are played in lexical order. Press esc or q to close
the overlay; the player is stopped and the orientation unlocked.`,
	}
	var dir, pattern string
	f := cmd.Flags()
	f.StringVar(&dir, "dir", "", "directory to collect videos from")
	f.StringVar(&pattern, "pattern", fs.DefaultPattern, "doublestar pattern used with --dir")
	f.StringVar(&a.cfg.Player, "player", a.cfg.Player, "video player command")
	f.StringVar(&a.cfg.Orientation, "orientation", a.cfg.Orientation, "orientation lock: none, adb")
	f.StringVar(&a.cfg.ADBSerial, "adb-serial", a.cfg.ADBSerial, "adb device serial")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sources := make([]yoga.Source, 0, len(args))
		for _, arg := range args {
			sources = append(sources, yoga.Source(arg))
		}
		if dir != "" {
			found, err := fs.Sources(dir, pattern)
			if err != nil {
				return err
			}
			sources = append(sources, found...)
		}
		if len(sources) == 0 {
			return fmt.Errorf("nothing to play: pass sources or --dir: %w", yoga.ErrValidation)
		}

		locker, err := a.cfg.locker()
		if err != nil {
			return err
		}
		opener := exec.NewOpener(a.cfg.Player, a.cfg.PlayerArgs...)
		opener.Logger = a.logger

		palette := yoga.DefaultPalette()
		ctx := cmd.Context()
		for i, src := range sources {
			log := a.logger.With(zap.String("source", src.String()), zap.Int("index", i))
			log.Info("playback starting")
			dismissed := false
			err := bt.Watch(ctx, opener, locker, src, palette, func() { dismissed = true })
			if err != nil {
				return err
			}
			log.Info("playback released", zap.Bool("dismissed", dismissed))
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		return nil
	}
	return cmd
}
