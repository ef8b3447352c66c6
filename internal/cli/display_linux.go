//go:build linux

package cli

import (
	"context"
	"image"
	"time"

	"golang.org/x/image/draw"

	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/pipeline"
	"github.com/matzehuels/slicereveal/pkg/render"
	"github.com/matzehuels/slicereveal/pkg/render/sink/drm"
)

func (c *CLI) runDisplay(ctx context.Context, input string, card, fps int, opts pipeline.Options) error {
	if fps < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "fps must be positive, got %d", fps)
	}
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	src, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	player, err := runner.NewPlayer(ctx, src, opts)
	if err != nil {
		return err
	}
	defer player.Close()

	display, err := drm.Open(card)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnsupported, err, "open card %d", card)
	}
	defer display.Close()

	c.Logger.Info("displaying", "card", card, "screen", display.Bounds().Size(), "instance", player.ID())
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	canvas := image.NewNRGBA(player.Bounds())
	theme := ""
	for {
		// The letterbox around the canvas follows the theme.
		if st := player.State(); st.Theme != theme {
			theme = st.Theme
			if t, err := render.ParseTheme(theme); err == nil {
				draw.Draw(display, display.Bounds(), image.NewUniform(t.BackgroundColor()), image.Point{}, draw.Src)
			}
		}
		player.DrawAt(canvas, time.Now())
		if err := display.WriteFrame(canvas); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
