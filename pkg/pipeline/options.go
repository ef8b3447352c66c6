package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slicereveal/pkg/cache"
	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/render"
	"github.com/matzehuels/slicereveal/pkg/reveal"
	"github.com/matzehuels/slicereveal/pkg/sequencer"
	"github.com/matzehuels/slicereveal/pkg/sketch"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultSlices is the number of bands the image is cut into.
	DefaultSlices = 3

	// MaxSlices bounds the slice count accepted from configuration.
	MaxSlices = 64

	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 420

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 420

	// MaxDimension bounds the canvas size.
	MaxDimension = 8192

	// DefaultFPS is the default export frame rate.
	DefaultFPS = 25

	// DefaultCycles is the default number of full loops exported.
	DefaultCycles = 1

	// DefaultSeed seeds exports when no seed is given, so renders are reproducible.
	DefaultSeed = uint64(42)

	// DefaultScatteredOpacity is the opacity of slices while scattered.
	DefaultScatteredOpacity = 0.75
)

// Defaults for enumerated options.
const (
	DefaultTheme     = "dark"
	DefaultFit       = string(render.FitContain)
	DefaultDirection = string(reveal.Vertical)
	DefaultInitial   = InitialAssembled
)

// Initial state names.
const (
	InitialAssembled = "assembled"
	InitialScattered = "scattered"
)

// Format constants for export formats.
const (
	FormatGIF  = "gif"
	FormatPNG  = "png"
	FormatANSI = "ansi"
)

// ValidFormats lists the supported export formats.
var ValidFormats = []string{FormatGIF, FormatPNG, FormatANSI}

// Initials lists the valid initial states.
var Initials = []string{InitialAssembled, InitialScattered}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// TimingMS holds phase durations in milliseconds. Nil entries take the
// default; zero and negative entries are valid and mean "no hold".
type TimingMS struct {
	DrawingHold *int `toml:"drawing_hold" json:"drawing_hold,omitempty"`
	Scatter     *int `toml:"scatter" json:"scatter,omitempty"`
	Reassemble  *int `toml:"reassemble" json:"reassemble,omitempty"`
	ColorHold   *int `toml:"color_hold" json:"color_hold,omitempty"`
	FadeOut     *int `toml:"fade_out" json:"fade_out,omitempty"`
}

// Options contains all configuration for rendering a reveal.
// It decodes from TOML config files and JSON request bodies.
type Options struct {
	// Canvas options. Zero Slices, Width or Height take the defaults.
	Slices    int    `toml:"slices" json:"slices,omitempty"`
	Width     int    `toml:"width" json:"width,omitempty"`
	Height    int    `toml:"height" json:"height,omitempty"`
	Theme     string `toml:"theme" json:"theme,omitempty"`
	Fit       string `toml:"fit" json:"fit,omitempty"`
	Direction string `toml:"direction" json:"direction,omitempty"`

	// Animation options
	AutoPlay         *bool    `toml:"autoplay" json:"autoplay,omitempty"`
	Initial          string   `toml:"initial" json:"initial,omitempty"`
	// Nil ranges take the defaults; zero disables motion on that axis.
	ScatterX         *float64 `toml:"scatter_x" json:"scatter_x,omitempty"`
	ScatterY         *float64 `toml:"scatter_y" json:"scatter_y,omitempty"`
	Rotation         *float64 `toml:"rotation" json:"rotation,omitempty"`
	ScatteredOpacity *float64 `toml:"scattered_opacity" json:"scattered_opacity,omitempty"`
	Timing           TimingMS `toml:"timing" json:"timing"`
	Seed             uint64   `toml:"seed" json:"seed,omitempty"`

	// Sketch options
	Slope     *float64 `toml:"slope" json:"slope,omitempty"`
	Intercept *float64 `toml:"intercept" json:"intercept,omitempty"`

	// Export options
	FPS     int      `toml:"fps" json:"fps,omitempty"`
	Cycles  int      `toml:"cycles" json:"cycles,omitempty"`
	Formats []string `toml:"formats" json:"formats,omitempty"`
	Output  string   `toml:"output" json:"output,omitempty"`
	Refresh bool     `toml:"-" json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Stats contains export statistics.
type Stats struct {
	Frames      int
	PrepareTime time.Duration
	RenderTime  time.Duration
	CacheHit    bool
}

// Result contains the outputs of an export.
type Result struct {
	// Artifacts holds in-memory outputs keyed by format. Formats written to
	// disk (png sequences) are listed in Files instead.
	Artifacts map[string][]byte
	Files     []string
	Stats     Stats
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateChoice("format", format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.setDefaults()

	if o.Slices < 1 || o.Slices > MaxSlices {
		return errors.New(errors.ErrCodeInvalidInput, "slices must be between 1 and %d, got %d", MaxSlices, o.Slices)
	}
	if o.Width < 1 || o.Height < 1 || o.Width > MaxDimension || o.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must be between 1x1 and %dx%d, got %dx%d", MaxDimension, MaxDimension, o.Width, o.Height)
	}
	if err := errors.ValidateChoice("theme", o.Theme, render.Themes); err != nil {
		return err
	}
	if err := errors.ValidateChoice("fit", o.Fit, render.Fits); err != nil {
		return err
	}
	if err := errors.ValidateChoice("direction", o.Direction, reveal.Directions); err != nil {
		return err
	}
	if err := errors.ValidateChoice("initial", o.Initial, Initials); err != nil {
		return err
	}
	for _, r := range []struct {
		name string
		v    float64
	}{{"scatter_x", *o.ScatterX}, {"scatter_y", *o.ScatterY}, {"rotation", *o.Rotation}} {
		if r.v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must not be negative, got %g", r.name, r.v)
		}
	}
	if op := *o.ScatteredOpacity; op < 0 || op > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "scattered_opacity must be between 0 and 1, got %g", op)
	}
	if o.FPS < 1 || o.FPS > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "fps must be between 1 and 100, got %d", o.FPS)
	}
	if o.Cycles < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cycles must be positive, got %d", o.Cycles)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *Options) setDefaults() {
	if o.Slices == 0 {
		o.Slices = DefaultSlices
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Fit == "" {
		o.Fit = DefaultFit
	}
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.AutoPlay == nil {
		o.AutoPlay = ptr(true)
	}
	if o.Initial == "" {
		o.Initial = DefaultInitial
	}
	spread := sequencer.DefaultSpread()
	if o.ScatterX == nil {
		o.ScatterX = ptr(spread.X)
	}
	if o.ScatterY == nil {
		o.ScatterY = ptr(spread.Y)
	}
	if o.Rotation == nil {
		o.Rotation = ptr(spread.Rotation)
	}
	if o.ScatteredOpacity == nil {
		o.ScatteredOpacity = ptr(DefaultScatteredOpacity)
	}
	def := sequencer.DefaultTiming()
	o.Timing.DrawingHold = msOr(o.Timing.DrawingHold, def.DrawingHold)
	o.Timing.Scatter = msOr(o.Timing.Scatter, def.Scatter)
	o.Timing.Reassemble = msOr(o.Timing.Reassemble, def.Reassemble)
	o.Timing.ColorHold = msOr(o.Timing.ColorHold, def.ColorHold)
	o.Timing.FadeOut = msOr(o.Timing.FadeOut, def.FadeOut)
	if o.Slope == nil {
		o.Slope = ptr(sketch.DefaultSlope)
	}
	if o.Intercept == nil {
		o.Intercept = ptr(sketch.DefaultIntercept)
	}
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if o.Cycles == 0 {
		o.Cycles = DefaultCycles
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatGIF}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SequencerTiming converts the millisecond table. Call after ValidateAndSetDefaults.
func (o *Options) SequencerTiming() sequencer.Timing {
	ms := func(p *int) time.Duration { return time.Duration(*p) * time.Millisecond }
	return sequencer.Timing{
		DrawingHold: ms(o.Timing.DrawingHold),
		Scatter:     ms(o.Timing.Scatter),
		Reassemble:  ms(o.Timing.Reassemble),
		ColorHold:   ms(o.Timing.ColorHold),
		FadeOut:     ms(o.Timing.FadeOut),
	}
}

// SequencerConfig returns the sequencer configuration. Call after ValidateAndSetDefaults.
func (o *Options) SequencerConfig() sequencer.Config {
	initial := sequencer.InitialAssembled
	if o.Initial == InitialScattered {
		initial = sequencer.InitialScattered
	}
	return sequencer.Config{
		SliceCount: o.Slices,
		Timing:     o.SequencerTiming(),
		Spread:     sequencer.Spread{X: *o.ScatterX, Y: *o.ScatterY, Rotation: *o.Rotation},
		AutoPlay:   *o.AutoPlay,
		Initial:    initial,
	}
}

// Motion returns the per-slice transition settings.
func (o *Options) Motion() reveal.Motion {
	m := reveal.DefaultMotion()
	m.ScatteredOpacity = *o.ScatteredOpacity
	return m
}

// ThemeValue returns the parsed theme. Call after ValidateAndSetDefaults.
func (o *Options) ThemeValue() render.Theme {
	t, err := render.ParseTheme(o.Theme)
	if err != nil {
		return render.ThemeDark
	}
	return t
}

// DirectionValue returns the parsed direction. Call after ValidateAndSetDefaults.
func (o *Options) DirectionValue() reveal.Direction {
	d, err := reveal.ParseDirection(o.Direction)
	if err != nil {
		return reveal.Vertical
	}
	return d
}

// Filter returns a new sketch filter for the current theme.
func (o *Options) Filter() sketch.Filter {
	f := sketch.New(o.ThemeValue().IsDark())
	f.Slope = *o.Slope
	f.Intercept = *o.Intercept
	return f
}

// FrameInterval returns the time between exported frames.
func (o *Options) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(o.FPS, 1))
}

// LayerKeyOpts returns cache key options for a prepared layer.
func (o *Options) LayerKeyOpts(layer string) cache.LayerKeyOpts {
	opts := cache.LayerKeyOpts{
		Layer:  layer,
		Width:  o.Width,
		Height: o.Height,
		Fit:    o.Fit,
	}
	if layer == LayerSketch {
		opts.Theme = o.Theme
		opts.Slope = *o.Slope
		opts.Intercept = *o.Intercept
	}
	return opts
}

func msOr(p *int, def time.Duration) *int {
	if p != nil {
		return p
	}
	return ptr(int(def / time.Millisecond))
}

func ptr[T any](v T) *T {
	return &v
}
