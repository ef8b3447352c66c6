package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/pkg/pipeline"
	"github.com/matzehuels/slicereveal/pkg/sequencer"
	"github.com/matzehuels/slicereveal/pkg/sketch"
)

// optionFlags binds the reveal options shared by render, play, serve and
// display. Only flags the user set override values from the config file.
type optionFlags struct {
	slices           int
	width            int
	height           int
	theme            string
	fit              string
	direction        string
	autoplay         bool
	initial          string
	scatterX         float64
	scatterY         float64
	rotation         float64
	scatteredOpacity float64
	seed             uint64
	slope            float64
	intercept        float64
	refresh          bool

	drawingHold int
	scatter     int
	reassemble  int
	colorHold   int
	fadeOut     int
}

// register adds the option flags to cmd with defaults shown in --help.
func (f *optionFlags) register(cmd *cobra.Command) {
	def := sequencer.DefaultTiming()
	spread := sequencer.DefaultSpread()

	fs := cmd.Flags()
	fs.IntVarP(&f.slices, "slices", "n", pipeline.DefaultSlices, "number of slices (0 uses the default)")
	fs.IntVar(&f.width, "width", pipeline.DefaultWidth, "canvas width in pixels")
	fs.IntVar(&f.height, "height", pipeline.DefaultHeight, "canvas height in pixels")
	fs.StringVar(&f.theme, "theme", pipeline.DefaultTheme, "theme: dark, light")
	fs.StringVar(&f.fit, "fit", pipeline.DefaultFit, "fit: contain, cover, fill")
	fs.StringVar(&f.direction, "direction", pipeline.DefaultDirection, "cut direction: vertical, horizontal")
	fs.BoolVar(&f.autoplay, "autoplay", true, "start the loop immediately")
	fs.StringVar(&f.initial, "initial", pipeline.DefaultInitial, "initial state: assembled, scattered")
	fs.Float64Var(&f.scatterX, "scatter-x", spread.X, "horizontal scatter range in pixels")
	fs.Float64Var(&f.scatterY, "scatter-y", spread.Y, "vertical scatter range in pixels")
	fs.Float64Var(&f.rotation, "rotation", spread.Rotation, "rotation range in degrees")
	fs.Float64Var(&f.scatteredOpacity, "scattered-opacity", pipeline.DefaultScatteredOpacity, "slice opacity while scattered (0-1)")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed for scatter offsets (0 picks one)")
	fs.Float64Var(&f.slope, "contrast", sketch.DefaultSlope, "sketch contrast slope")
	fs.Float64Var(&f.intercept, "brightness", sketch.DefaultIntercept, "sketch brightness intercept")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached layers")

	fs.IntVar(&f.drawingHold, "drawing-hold", ms(def.DrawingHold), "sketch hold before scattering (ms)")
	fs.IntVar(&f.scatter, "scatter", ms(def.Scatter), "scattered pause (ms)")
	fs.IntVar(&f.reassemble, "reassemble", ms(def.Reassemble), "reassembly time before color (ms)")
	fs.IntVar(&f.colorHold, "color-hold", ms(def.ColorHold), "color hold before fading (ms)")
	fs.IntVar(&f.fadeOut, "fade-out", ms(def.FadeOut), "fade-out time (ms)")
}

// apply copies every flag the user set onto opts.
func (f *optionFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := cmd.Flags().Changed

	if set("slices") {
		opts.Slices = f.slices
	}
	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("theme") {
		opts.Theme = f.theme
	}
	if set("fit") {
		opts.Fit = f.fit
	}
	if set("direction") {
		opts.Direction = f.direction
	}
	if set("autoplay") {
		opts.AutoPlay = &f.autoplay
	}
	if set("initial") {
		opts.Initial = f.initial
	}
	if set("scatter-x") {
		opts.ScatterX = &f.scatterX
	}
	if set("scatter-y") {
		opts.ScatterY = &f.scatterY
	}
	if set("rotation") {
		opts.Rotation = &f.rotation
	}
	if set("scattered-opacity") {
		opts.ScatteredOpacity = &f.scatteredOpacity
	}
	if set("seed") {
		opts.Seed = f.seed
	}
	if set("contrast") {
		opts.Slope = &f.slope
	}
	if set("brightness") {
		opts.Intercept = &f.intercept
	}
	if set("refresh") {
		opts.Refresh = f.refresh
	}

	if set("drawing-hold") {
		opts.Timing.DrawingHold = &f.drawingHold
	}
	if set("scatter") {
		opts.Timing.Scatter = &f.scatter
	}
	if set("reassemble") {
		opts.Timing.Reassemble = &f.reassemble
	}
	if set("color-hold") {
		opts.Timing.ColorHold = &f.colorHold
	}
	if set("fade-out") {
		opts.Timing.FadeOut = &f.fadeOut
	}
}
