package pipeline

import (
	"context"
	"image"
	"sync"
	"time"

	"golang.org/x/image/draw"

	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/render"
	"github.com/matzehuels/slicereveal/pkg/reveal"
	"github.com/matzehuels/slicereveal/pkg/sequencer"
)

// PlayerOption configures a Player.
type PlayerOption func(*playerConfig)

type playerConfig struct {
	sched sequencer.Scheduler
}

// WithScheduler runs the player's sequencer on sched instead of the wall clock.
func WithScheduler(sched sequencer.Scheduler) PlayerOption {
	return func(c *playerConfig) { c.sched = sched }
}

// PlayerState summarizes a player for status displays.
type PlayerState struct {
	ID        string
	Slices    int
	Theme     string
	Direction string
	Running   bool
	Phase     sequencer.Phase
}

// Player is one live reveal instance: a sequencer on a real or manual
// clock, an animator following it and the layers it draws from.
// All methods are safe for concurrent use.
type Player struct {
	runner *Runner
	sched  sequencer.Scheduler
	seq    *sequencer.Sequencer
	anim   *reveal.Animator

	mu     sync.Mutex
	opts   Options
	src    *Source
	layers render.Layers
	comp   render.Compositor
	closed bool
}

// NewPlayer prepares src and starts the loop if autoplay is on.
func (r *Runner) NewPlayer(ctx context.Context, src *Source, opts Options, popts ...PlayerOption) (*Player, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	cfg := playerConfig{sched: sequencer.WallScheduler{}}
	for _, o := range popts {
		o(&cfg)
	}

	layers, _, err := r.Prepare(ctx, src, opts)
	if err != nil {
		return nil, err
	}

	p := &Player{
		runner: r,
		sched:  cfg.sched,
		opts:   opts,
		src:    src,
		layers: layers,
		comp:   render.Compositor{Theme: opts.ThemeValue(), Direction: opts.DirectionValue()},
	}

	seqCfg := opts.SequencerConfig()
	seqOpts := []sequencer.Option{
		sequencer.WithScheduler(cfg.sched),
		sequencer.WithLogger(opts.Logger),
	}
	if opts.Seed != 0 {
		seqOpts = append(seqOpts, sequencer.WithRand(sequencer.NewRand(opts.Seed)))
	}

	// anim is set before Start, the first call that notifies observers.
	var anim *reveal.Animator
	seqOpts = append(seqOpts, sequencer.WithObserver(func(tr sequencer.Transition) {
		anim.Observe(tr)
	}))
	p.seq = sequencer.New(seqCfg, seqOpts...)
	anim = reveal.NewAnimator(opts.Motion(), p.seq.Snapshot())
	p.anim = anim

	r.Logger.Debug("player created", "instance", p.seq.ID(), "slices", opts.Slices)
	p.seq.Start()
	return p, nil
}

// ID returns the sequencer's instance handle.
func (p *Player) ID() string {
	return p.seq.ID()
}

// Start (re)starts the loop from DrawingHold.
func (p *Player) Start() {
	p.seq.Start()
}

// Stop pauses the loop. Slices finish their current transitions.
func (p *Player) Stop() {
	p.seq.Stop()
}

// TogglePause stops a running loop or starts a stopped one and reports
// whether the loop is now running.
func (p *Player) TogglePause() bool {
	if p.seq.Running() {
		p.seq.Stop()
		return false
	}
	p.seq.Start()
	return p.seq.Running()
}

// Snapshot returns the sequencer state.
func (p *Player) Snapshot() sequencer.Snapshot {
	return p.seq.Snapshot()
}

// State returns a summary of the player's settings.
func (p *Player) State() PlayerState {
	snap := p.seq.Snapshot()
	p.mu.Lock()
	defer p.mu.Unlock()
	return PlayerState{
		ID:        p.seq.ID(),
		Slices:    len(snap.Offsets),
		Theme:     p.opts.Theme,
		Direction: p.opts.Direction,
		Running:   snap.Running,
		Phase:     snap.Phase,
	}
}

// Bounds returns the canvas bounds.
func (p *Player) Bounds() image.Rectangle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.layers.Bounds()
}

// Frame renders the current frame.
func (p *Player) Frame() *image.NRGBA {
	return p.FrameAt(p.sched.Now())
}

// FrameAt renders the frame at now.
func (p *Player) FrameAt(now time.Time) *image.NRGBA {
	p.mu.Lock()
	layers, comp := p.layers, p.comp
	p.mu.Unlock()
	return comp.Frame(layers, p.anim.Poses(now))
}

// DrawAt renders the frame at now into dst.
func (p *Player) DrawAt(dst draw.Image, now time.Time) {
	p.mu.Lock()
	layers, comp := p.layers, p.comp
	p.mu.Unlock()
	comp.Draw(dst, layers, p.anim.Poses(now))
}

// Settled reports whether every slice has reached its target at now.
func (p *Player) Settled(now time.Time) bool {
	return p.anim.Settled(now)
}

// SetSlices changes the slice count. A running loop restarts.
func (p *Player) SetSlices(n int) error {
	if n < 1 || n > MaxSlices {
		return errors.New(errors.ErrCodeInvalidInput, "slices must be between 1 and %d, got %d", MaxSlices, n)
	}
	p.mu.Lock()
	p.opts.Slices = n
	p.mu.Unlock()
	p.seq.SetSliceCount(n)
	return nil
}

// SetTheme switches the theme. The sketch layer depends on the theme, so
// layers are prepared again.
func (p *Player) SetTheme(ctx context.Context, name string) error {
	theme, err := render.ParseTheme(name)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "set theme")
	}

	p.mu.Lock()
	opts, src := p.opts, p.src
	p.mu.Unlock()
	opts.Theme = theme.Name
	layers, _, err := p.runner.Prepare(ctx, src, opts)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Theme = theme.Name
	p.layers = layers
	p.comp.Theme = theme
	return nil
}

// ToggleTheme switches between dark and light.
func (p *Player) ToggleTheme(ctx context.Context) error {
	p.mu.Lock()
	next := p.comp.Theme.Toggle()
	p.mu.Unlock()
	return p.SetTheme(ctx, next.Name)
}

// SetDirection switches the cut axis. The loop is not restarted.
func (p *Player) SetDirection(name string) error {
	dir, err := reveal.ParseDirection(name)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "set direction")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Direction = string(dir)
	p.comp.Direction = dir
	return nil
}

// ToggleDirection switches between vertical and horizontal cuts.
func (p *Player) ToggleDirection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.comp.Direction = p.comp.Direction.Toggle()
	p.opts.Direction = string(p.comp.Direction)
}

// SetImage replaces the source image. The previous image and its layers are
// released; the loop keeps running.
func (p *Player) SetImage(ctx context.Context, src *Source) error {
	p.mu.Lock()
	opts := p.opts
	p.mu.Unlock()
	layers, _, err := p.runner.Prepare(ctx, src, opts)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.src = src
	p.layers = layers
	return nil
}

// Close stops the loop. Further frames show the last poses.
func (p *Player) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	p.seq.Stop()
	p.runner.Logger.Debug("player closed", "instance", p.seq.ID())
}
