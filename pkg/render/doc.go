// Package render draws split-reveal frames.
//
// # Overview
//
// A frame is built from two canvas-sized layers and a list of slice poses:
//
//   - [Canvas] scales the source image onto the canvas using a [Fit] mode
//   - [Prepare] produces [Layers]: the color canvas and its sketch rendition
//   - [Compositor] clears to the [Theme] background and draws each slice
//
// Every slice is the band of one layer that [reveal.BandRect] selects. It is
// rotated about the canvas center, translated by the pose offset, and drawn
// with the pose opacity. Slices in the outline state are cut from the sketch
// layer; all others from the color layer.
//
//	layers := render.Prepare(img, 420, 420, render.FitContain, sketch.New(true))
//	comp := render.Compositor{Theme: render.ThemeDark, Direction: reveal.Vertical}
//	frame := comp.Frame(layers, animator.Poses(now))
//
// # Output
//
// The [sink] subpackage encodes frames as GIF, numbered PNG files or ANSI
// terminal art. Linux builds can also scan out to a DRM framebuffer through
// the sink/drm subpackage.
//
// [reveal.BandRect]: github.com/matzehuels/slicereveal/pkg/reveal.BandRect
// [sink]: github.com/matzehuels/slicereveal/pkg/render/sink
package render
