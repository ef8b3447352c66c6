package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/observability"
	"github.com/matzehuels/slicereveal/pkg/render"
	"github.com/matzehuels/slicereveal/pkg/render/sink"
	"github.com/matzehuels/slicereveal/pkg/reveal"
	"github.com/matzehuels/slicereveal/pkg/sequencer"
)

// exportEpoch is the virtual start time of every export, so identical
// options yield identical frames.
var exportEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// FrameCount returns the number of frames an export of opts produces.
// Call after ValidateAndSetDefaults.
func (o *Options) FrameCount() int {
	cycle := o.SequencerTiming().Cycle()
	if cycle <= 0 {
		cycle = sequencer.MinCycle
	}
	total := cycle * time.Duration(o.Cycles)
	return max(int(total/o.FrameInterval()), 1)
}

// Export renders opts.Cycles full loops of src at opts.FPS and writes the
// frames to one sink per requested format.
//
// GIF and ANSI output are returned in Result.Artifacts. PNG frames are
// written to the opts.Output directory (default "frames") and listed in
// Result.Files. Exports run on a virtual clock and are deterministic for a
// given seed (DefaultSeed when unset).
func (r *Runner) Export(ctx context.Context, src *Source, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	prepStart := time.Now()
	layers, hit, err := r.Prepare(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	result.Stats.PrepareTime = time.Since(prepStart)
	result.Stats.CacheHit = hit

	bufs := make(map[string]*bytes.Buffer)
	var sinks []sink.Sink
	var pngs *sink.PNGSequence
	for _, format := range opts.Formats {
		switch format {
		case FormatGIF:
			buf := new(bytes.Buffer)
			bufs[format] = buf
			sinks = append(sinks, sink.NewGIF(buf, sink.WithFrameDelay(opts.FrameInterval())))
		case FormatANSI:
			buf := new(bytes.Buffer)
			bufs[format] = buf
			sinks = append(sinks, sink.NewANSI(buf, opts.Width/10, opts.Height/20))
		case FormatPNG:
			dir := opts.Output
			if dir == "" {
				dir = "frames"
			}
			prefix := "frame"
			if src.Path != "" {
				prefix = trimExt(filepath.Base(src.Path))
			}
			pngs, err = sink.NewPNGSequence(dir, prefix)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "png output")
			}
			sinks = append(sinks, pngs)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}
	}

	frames := opts.FrameCount()
	observability.Render().OnExportStart(ctx, opts.Formats, frames)
	renderStart := time.Now()

	out := sink.Multi(sinks...)
	err = r.renderFrames(ctx, layers, opts, frames, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnExportComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	result.Stats.Frames = frames
	for format, buf := range bufs {
		result.Artifacts[format] = buf.Bytes()
	}
	if pngs != nil {
		result.Files = pngs.Paths()
	}

	r.Logger.Info("exported reveal",
		"formats", opts.Formats,
		"frames", frames,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// renderFrames drives a sequencer on a manual clock and writes one frame
// per interval.
func (r *Runner) renderFrames(ctx context.Context, layers render.Layers, opts Options, frames int, out sink.Sink) error {
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	sched := sequencer.NewManualScheduler(exportEpoch)

	var anim *reveal.Animator
	seq := sequencer.New(opts.SequencerConfig(),
		sequencer.WithScheduler(sched),
		sequencer.WithRand(sequencer.NewRand(seed)),
		sequencer.WithLogger(opts.Logger),
		sequencer.WithObserver(func(tr sequencer.Transition) { anim.Observe(tr) }),
	)
	anim = reveal.NewAnimator(opts.Motion(), seq.Snapshot())
	seq.Start()
	defer seq.Stop()

	comp := render.Compositor{Theme: opts.ThemeValue(), Direction: opts.DirectionValue()}
	step := opts.FrameInterval()
	for i := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := exportEpoch.Add(time.Duration(i) * step)
		sched.AdvanceTo(now)
		if err := out.WriteFrame(comp.Frame(layers, anim.Poses(now))); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
