package motion

import "time"

// Transition describes how a tween reaches a new target.
type Transition struct {
	Duration time.Duration
	Delay    time.Duration
	Ease     Easing
}

// Tween is a single animated value. The zero value rests at 0.
type Tween struct {
	from  float64
	to    float64
	start time.Time
	dur   time.Duration
	ease  Easing
}

// NewTween returns a tween resting at v.
func NewTween(v float64) Tween {
	return Tween{from: v, to: v}
}

// Target returns the value the tween is heading to.
func (tw *Tween) Target() float64 {
	return tw.to
}

// Retarget heads toward to, starting from the value at now. Retargeting to
// the current target is a no-op so in-flight motion keeps its timing.
func (tw *Tween) Retarget(now time.Time, to float64, tr Transition) {
	if to == tw.to {
		return
	}
	tw.from = tw.Value(now)
	tw.to = to
	tw.start = now.Add(max(tr.Delay, 0))
	tw.dur = max(tr.Duration, 0)
	tw.ease = tr.Ease
}

// Jump sets the value immediately.
func (tw *Tween) Jump(v float64) {
	*tw = NewTween(v)
}

// Value returns the value at now.
func (tw *Tween) Value(now time.Time) float64 {
	p := tw.progress(now)
	if p >= 1 {
		return tw.to
	}
	if p <= 0 {
		return tw.from
	}
	ease := tw.ease
	if ease == nil {
		ease = Linear
	}
	return tw.from + (tw.to-tw.from)*ease.At(p)
}

// Done reports whether the tween has reached its target at now.
func (tw *Tween) Done(now time.Time) bool {
	return tw.progress(now) >= 1
}

func (tw *Tween) progress(now time.Time) float64 {
	if tw.from == tw.to {
		return 1
	}
	elapsed := now.Sub(tw.start)
	if elapsed < 0 {
		return 0
	}
	if tw.dur <= 0 || elapsed >= tw.dur {
		return 1
	}
	return float64(elapsed) / float64(tw.dur)
}
