// Package motion interpolates animated values over time.
//
// A [Tween] moves a single float from its current value to a target along an
// [Easing] curve, after an optional delay. Retargeting a tween mid-flight
// starts the new segment from wherever the old one currently is, so motion
// never jumps.
package motion

import "math"

// Easing maps linear progress in [0,1] to eased progress.
type Easing interface {
	At(t float64) float64
}

// EasingFunc adapts a function to Easing.
type EasingFunc func(float64) float64

// At calls f.
func (f EasingFunc) At(t float64) float64 { return f(t) }

// Linear is the identity easing.
var Linear Easing = EasingFunc(func(t float64) float64 { return t })

// CubicBezier is a CSS-style timing function through (0,0), (X1,Y1), (X2,Y2), (1,1).
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// Presets used by the reveal.
var (
	// EaseAssemble decelerates hard into place.
	EaseAssemble = CubicBezier{0.16, 1, 0.3, 1}
	// EaseScatter accelerates away.
	EaseScatter = CubicBezier{0.55, 0, 1, 0.45}
	// EaseInOut matches CSS ease-in-out.
	EaseInOut = CubicBezier{0.42, 0, 0.58, 1}
)

const (
	bezierEpsilon    = 1e-7
	newtonIterations = 8
)

// At returns the eased value for progress t. t is clamped to [0,1].
func (c CubicBezier) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return sampleCurve(c.Y1, c.Y2, c.solveX(t))
}

// solveX finds the curve parameter u with x(u) = x.
func (c CubicBezier) solveX(x float64) float64 {
	u := x
	for range newtonIterations {
		dx := sampleCurve(c.X1, c.X2, u) - x
		if math.Abs(dx) < bezierEpsilon {
			return u
		}
		d := sampleDerivative(c.X1, c.X2, u)
		if math.Abs(d) < 1e-6 {
			break
		}
		u -= dx / d
	}

	// Newton stalled; bisect.
	lo, hi := 0.0, 1.0
	u = x
	for lo < hi {
		v := sampleCurve(c.X1, c.X2, u)
		if math.Abs(v-x) < bezierEpsilon {
			return u
		}
		if x > v {
			lo = u
		} else {
			hi = u
		}
		next := (lo + hi) / 2
		if next == u {
			break
		}
		u = next
	}
	return u
}

// sampleCurve evaluates one coordinate of the Bézier with endpoints 0 and 1.
func sampleCurve(p1, p2, u float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	cc := 3 * p1
	return ((a*u+b)*u + cc) * u
}

func sampleDerivative(p1, p2, u float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	cc := 3 * p1
	return (3*a*u+2*b)*u + cc
}
