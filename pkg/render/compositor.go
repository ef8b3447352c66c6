package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/matzehuels/slicereveal/pkg/reveal"
	"github.com/matzehuels/slicereveal/pkg/sketch"
)

// Layers holds the two canvas-sized renditions every slice is cut from.
type Layers struct {
	Color  *image.NRGBA
	Sketch *image.NRGBA
}

// Prepare scales src onto a w×h canvas and derives the sketch layer from it.
func Prepare(src image.Image, w, h int, fit Fit, f sketch.Filter) Layers {
	canvas := Canvas(src, w, h, fit)
	return Layers{Color: canvas, Sketch: f.Apply(canvas)}
}

// Bounds returns the canvas bounds.
func (l Layers) Bounds() image.Rectangle {
	if l.Color == nil {
		return image.Rectangle{}
	}
	return l.Color.Bounds()
}

// Compositor draws posed slices over a themed background.
type Compositor struct {
	Theme     Theme
	Direction reveal.Direction
	// Interpolator resamples moved slices. Nil means draw.BiLinear.
	Interpolator draw.Interpolator
}

// Frame allocates a canvas-sized image and draws into it.
func (c Compositor) Frame(l Layers, poses []reveal.Pose) *image.NRGBA {
	dst := image.NewNRGBA(l.Bounds())
	c.Draw(dst, l, poses)
	return dst
}

// Draw clears dst to the theme background and draws every pose in index
// order, later slices over earlier ones. The canvas origin maps to dst's
// minimum point.
func (c Compositor) Draw(dst draw.Image, l Layers, poses []reveal.Pose) {
	db := dst.Bounds()
	draw.Draw(dst, db, image.NewUniform(c.Theme.BackgroundColor()), image.Point{}, draw.Src)
	if l.Color == nil {
		return
	}

	interp := c.Interpolator
	if interp == nil {
		interp = draw.BiLinear
	}

	canvas := l.Color.Bounds()
	n := len(poses)
	for _, p := range poses {
		if p.Opacity <= 0 {
			continue
		}
		sr := reveal.BandRect(p.Index, n, c.Direction, canvas)
		if sr.Empty() {
			continue
		}
		src := l.band(sr, p.Sketch)

		var mask image.Image
		if p.Opacity < 1 {
			mask = image.NewUniform(color.Alpha16{A: uint16(p.Opacity * 0xffff)})
		}

		if p.Identity() {
			dr := sr.Sub(canvas.Min).Add(db.Min)
			draw.DrawMask(dst, dr, src, sr.Min, mask, image.Point{}, draw.Over)
			continue
		}

		var opts *draw.Options
		if mask != nil {
			opts = &draw.Options{SrcMask: mask}
		}
		interp.Transform(dst, c.sliceTransform(p, canvas, db.Min), src, sr, draw.Over, opts)
	}
}

// band returns the source pixels for band sr with the sketch layer weighted
// by w over the color layer. Pure weights return a layer as is; mixed
// weights blend into a band-sized image in canvas coordinates.
func (l Layers) band(sr image.Rectangle, w float64) image.Image {
	switch {
	case l.Sketch == nil || w <= 0:
		return l.Color
	case w >= 1:
		return l.Sketch
	}
	mix := image.NewNRGBA(sr)
	draw.Draw(mix, sr, l.Color, sr.Min, draw.Src)
	draw.DrawMask(mix, sr, l.Sketch, sr.Min, image.NewUniform(color.Alpha16{A: uint16(w * 0xffff)}), image.Point{}, draw.Over)
	return mix
}

// sliceTransform maps canvas coordinates to dst coordinates for pose p:
// rotate about the canvas center, then translate.
func (c Compositor) sliceTransform(p reveal.Pose, canvas image.Rectangle, origin image.Point) f64.Aff3 {
	theta := p.Rotate * math.Pi / 180
	sin, cos := math.Sincos(theta)
	cx := float64(canvas.Min.X) + float64(canvas.Dx())/2
	cy := float64(canvas.Min.Y) + float64(canvas.Dy())/2
	tx := p.X + float64(origin.X-canvas.Min.X)
	ty := p.Y + float64(origin.Y-canvas.Min.Y)
	return f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy + tx,
		sin, cos, cy - sin*cx - cos*cy + ty,
	}
}
