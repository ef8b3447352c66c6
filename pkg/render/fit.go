package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Fit controls how a source image is scaled onto the canvas.
type Fit string

const (
	// FitContain scales to fit inside the canvas and centers the result,
	// leaving transparent margins.
	FitContain Fit = "contain"
	// FitCover scales to cover the canvas and crops the overflow around the center.
	FitCover Fit = "cover"
	// FitFill stretches to the canvas size.
	FitFill Fit = "fill"
)

// Fits lists the valid fit modes.
var Fits = []string{string(FitContain), string(FitCover), string(FitFill)}

// ParseFit converts a name to a Fit.
func ParseFit(s string) (Fit, error) {
	switch Fit(s) {
	case FitContain, FitCover, FitFill:
		return Fit(s), nil
	}
	return "", fmt.Errorf("unknown fit %q", s)
}

// Canvas scales src onto a w×h canvas anchored at the origin.
func Canvas(src image.Image, w, h int, fit Fit) *image.NRGBA {
	w, h = max(w, 1), max(h, 1)
	sb := src.Bounds()
	if sb.Empty() {
		return imaging.New(w, h, color.NRGBA{})
	}

	switch fit {
	case FitCover:
		return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
	case FitFill:
		return imaging.Resize(src, w, h, imaging.Lanczos)
	}

	scale := math.Min(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	nw := max(int(math.Round(float64(sb.Dx())*scale)), 1)
	nh := max(int(math.Round(float64(sb.Dy())*scale)), 1)
	fitted := imaging.Resize(src, min(nw, w), min(nh, h), imaging.Lanczos)
	return imaging.PasteCenter(imaging.New(w, h, color.NRGBA{}), fitted)
}
