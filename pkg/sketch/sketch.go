// Package sketch turns a photo into a high-contrast line drawing.
//
// Each pixel is reduced to its luminance, pushed through a steep linear
// transfer so mid tones saturate to paper or ink, and inverted on dark
// themes so the drawing reads as light strokes on a dark ground. Alpha is
// left untouched.
package sketch

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Default transfer parameters.
const (
	DefaultSlope     = 5.0
	DefaultIntercept = -1.5
)

// Filter is one configured sketch effect.
type Filter struct {
	Slope     float64
	Intercept float64
	Dark      bool

	handle string
}

// New returns a filter with the default transfer. Every filter carries its
// own handle so two filters with equal parameters never collide in a cache.
func New(dark bool) Filter {
	return Filter{
		Slope:     DefaultSlope,
		Intercept: DefaultIntercept,
		Dark:      dark,
		handle:    "sk" + uuid.NewString()[:8],
	}
}

// Handle returns the filter's instance handle. It is empty for a zero Filter.
func (f Filter) Handle() string {
	return f.handle
}

// WithDark returns a copy of f for the given theme, keeping the handle.
func (f Filter) WithDark(dark bool) Filter {
	f.Dark = dark
	return f
}

// String describes the transfer.
func (f Filter) String() string {
	return fmt.Sprintf("sketch(slope=%g intercept=%g dark=%t)", f.Slope, f.Intercept, f.Dark)
}

// Level maps a luminance in [0,1] to the output gray level in [0,1].
func (f Filter) Level(lum float64) float64 {
	v := min(max(f.Slope*lum+f.Intercept, 0), 1)
	if f.Dark {
		v = 1 - v
	}
	return v
}

// Apply returns the filtered copy of img.
func (f Filter) Apply(img image.Image) *image.NRGBA {
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(f.Level(float64(i)/255)*255 + 0.5)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		v := lut[luminance(c)]
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}

// luminance returns the Rec. 709 luma of c on the 0..255 scale.
func luminance(c color.NRGBA) uint8 {
	l := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
	return uint8(min(l+0.5, 255))
}
