// Package reveal maps sequencer state onto per-slice poses.
//
// The image is cut into N equal bands. Each band is drawn as its own layer
// with a transform, an opacity and a filter flag; [Animator] keeps those
// values moving smoothly between the targets the sequencer sets.
package reveal

import (
	"fmt"
	"image"
)

// Direction selects the axis the image is cut along.
type Direction string

const (
	// Vertical cuts produce side-by-side columns: band i spans [i/N,(i+1)/N]
	// of the width and the full height.
	Vertical Direction = "vertical"
	// Horizontal cuts produce stacked rows: band i spans [i/N,(i+1)/N] of the
	// height and the full width.
	Horizontal Direction = "horizontal"
)

// Directions lists the valid directions.
var Directions = []string{string(Vertical), string(Horizontal)}

// ParseDirection converts a name to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Vertical, Horizontal:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Toggle returns the other direction.
func (d Direction) Toggle() Direction {
	if d == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Band is a clip region in fractions of the canvas, [Start, End) along the
// cut axis and the full extent across it.
type Band struct {
	Start, End float64
}

// BandOf returns band i of n. n is clamped to at least 1 and the last band
// always ends at exactly 1.
func BandOf(i, n int) Band {
	n = max(n, 1)
	b := Band{Start: float64(i) / float64(n), End: float64(i+1) / float64(n)}
	if i == n-1 {
		b.End = 1
	}
	return b
}

// Bands returns all n bands in index order.
func Bands(n int) []Band {
	n = max(n, 1)
	out := make([]Band, n)
	for i := range out {
		out[i] = BandOf(i, n)
	}
	return out
}

// BandRect returns the pixel rectangle of band i of n within bounds.
// Boundaries use integer division so the rectangles tile bounds exactly.
func BandRect(i, n int, dir Direction, bounds image.Rectangle) image.Rectangle {
	n = max(n, 1)
	if dir == Horizontal {
		h := bounds.Dy()
		y0 := bounds.Min.Y + i*h/n
		y1 := bounds.Min.Y + (i+1)*h/n
		return image.Rect(bounds.Min.X, y0, bounds.Max.X, y1)
	}
	w := bounds.Dx()
	x0 := bounds.Min.X + i*w/n
	x1 := bounds.Min.X + (i+1)*w/n
	return image.Rect(x0, bounds.Min.Y, x1, bounds.Max.Y)
}
