package motion

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func TestCubicBezierEndpoints(t *testing.T) {
	for _, c := range []CubicBezier{EaseAssemble, EaseScatter, EaseInOut} {
		if got := c.At(0); got != 0 {
			t.Errorf("%+v.At(0) = %v, want 0", c, got)
		}
		if got := c.At(1); got != 1 {
			t.Errorf("%+v.At(1) = %v, want 1", c, got)
		}
		if got := c.At(-1); got != 0 {
			t.Errorf("%+v.At(-1) = %v, want 0", c, got)
		}
		if got := c.At(2); got != 1 {
			t.Errorf("%+v.At(2) = %v, want 1", c, got)
		}
	}
}

func TestCubicBezierLinear(t *testing.T) {
	lin := CubicBezier{0, 0, 1, 1}
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if got := lin.At(x); !near(got, x) {
			t.Errorf("At(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestCubicBezierShape(t *testing.T) {
	// Assembling is ease-out-like: well ahead of linear at the midpoint.
	if got := EaseAssemble.At(0.5); got <= 0.8 {
		t.Errorf("EaseAssemble.At(0.5) = %v, want > 0.8", got)
	}
	// Scattering is ease-in-like: behind linear at the midpoint.
	if got := EaseScatter.At(0.5); got >= 0.5 {
		t.Errorf("EaseScatter.At(0.5) = %v, want < 0.5", got)
	}
	// Symmetric curve crosses the midpoint.
	if got := EaseInOut.At(0.5); !near(got, 0.5) {
		t.Errorf("EaseInOut.At(0.5) = %v, want 0.5", got)
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	for _, c := range []CubicBezier{EaseAssemble, EaseScatter, EaseInOut} {
		prev := 0.0
		for i := 1; i <= 100; i++ {
			v := c.At(float64(i) / 100)
			if v+1e-9 < prev {
				t.Fatalf("%+v not monotonic at %d: %v < %v", c, i, v, prev)
			}
			prev = v
		}
	}
}

func TestTweenDelayAndDuration(t *testing.T) {
	tw := NewTween(0)
	tw.Retarget(t0, 100, Transition{Duration: time.Second, Delay: 500 * time.Millisecond, Ease: Linear})

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{400 * time.Millisecond, 0},
		{500 * time.Millisecond, 0},
		{time.Second, 50},
		{1500 * time.Millisecond, 100},
		{time.Hour, 100},
	}
	for _, tt := range tests {
		if got := tw.Value(t0.Add(tt.at)); !near(got, tt.want) {
			t.Errorf("Value(+%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
	if !tw.Done(t0.Add(1500 * time.Millisecond)) {
		t.Error("Done = false at end of transition")
	}
}

func TestTweenRetargetFromCurrentValue(t *testing.T) {
	tw := NewTween(0)
	tw.Retarget(t0, 100, Transition{Duration: time.Second, Ease: Linear})

	mid := t0.Add(500 * time.Millisecond)
	tw.Retarget(mid, 0, Transition{Duration: time.Second, Ease: Linear})

	if got := tw.Value(mid); !near(got, 50) {
		t.Errorf("Value at retarget = %v, want 50", got)
	}
	if got := tw.Value(mid.Add(500 * time.Millisecond)); !near(got, 25) {
		t.Errorf("Value halfway back = %v, want 25", got)
	}
}

func TestTweenRetargetSameTargetKeepsTiming(t *testing.T) {
	tw := NewTween(0)
	tw.Retarget(t0, 10, Transition{Duration: time.Second, Ease: Linear})
	tw.Retarget(t0.Add(500*time.Millisecond), 10, Transition{Duration: time.Hour, Ease: Linear})

	if got := tw.Value(t0.Add(time.Second)); got != 10 {
		t.Errorf("Value = %v, want 10", got)
	}
}

func TestTweenZeroDurationJumps(t *testing.T) {
	tw := NewTween(1)
	tw.Retarget(t0, 0, Transition{})
	if got := tw.Value(t0); got != 0 {
		t.Errorf("Value = %v, want 0", got)
	}

	tw.Jump(3)
	if got := tw.Value(t0); got != 3 || tw.Target() != 3 {
		t.Errorf("after Jump Value = %v Target = %v, want 3", got, tw.Target())
	}
}
