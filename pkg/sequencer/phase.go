package sequencer

import (
	"fmt"
	"time"
)

// Phase is one step of the reveal loop.
type Phase int

const (
	// PhaseIdle is the state before the first phase is entered, and the
	// state a sequencer stays in when autoplay is off.
	PhaseIdle Phase = iota
	PhaseDrawingHold
	PhaseScatter
	PhaseReassemble
	PhaseColorHold
	PhaseFadeOut
)

// Phases lists the loop phases in order.
var Phases = []Phase{
	PhaseDrawingHold,
	PhaseScatter,
	PhaseReassemble,
	PhaseColorHold,
	PhaseFadeOut,
}

var phaseNames = map[Phase]string{
	PhaseIdle:        "idle",
	PhaseDrawingHold: "drawing_hold",
	PhaseScatter:     "scatter",
	PhaseReassemble:  "reassemble",
	PhaseColorHold:   "color_hold",
	PhaseFadeOut:     "fade_out",
}

// String returns the snake_case phase name.
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Next returns the phase that follows p. Idle and FadeOut both lead to DrawingHold.
func (p Phase) Next() Phase {
	switch p {
	case PhaseDrawingHold:
		return PhaseScatter
	case PhaseScatter:
		return PhaseReassemble
	case PhaseReassemble:
		return PhaseColorHold
	case PhaseColorHold:
		return PhaseFadeOut
	default:
		return PhaseDrawingHold
	}
}

// State holds the visual flags read by the renderer.
type State struct {
	Assembled bool // slices sit at their home position
	Outline   bool // sketch filter is applied
	Visible   bool // slices are shown at all
}

// State returns the flags in effect while p holds in a running loop.
// Idle has no flags set.
func (p Phase) State() State {
	var s State
	for _, q := range Phases {
		s = s.apply(q)
		if q == p {
			return s
		}
	}
	return State{}
}

// apply mutates s as phase p prescribes on entry.
func (s State) apply(p Phase) State {
	switch p {
	case PhaseDrawingHold:
		s.Assembled, s.Outline, s.Visible = true, true, true
	case PhaseScatter:
		s.Assembled = false
	case PhaseReassemble:
		s.Outline, s.Assembled = false, true
	case PhaseFadeOut:
		s.Visible = false
	}
	return s
}

// Timing holds the hold duration of every phase.
type Timing struct {
	DrawingHold time.Duration
	Scatter     time.Duration
	Reassemble  time.Duration
	ColorHold   time.Duration
	FadeOut     time.Duration
}

// MinCycle is the wait inserted at FadeOut when every duration is
// non-positive, so a zero timing table cannot spin the scheduler.
const MinCycle = time.Millisecond

// DefaultTiming returns the standard phase durations.
func DefaultTiming() Timing {
	return Timing{
		DrawingHold: 2000 * time.Millisecond,
		Scatter:     1600 * time.Millisecond,
		Reassemble:  1800 * time.Millisecond,
		ColorHold:   1500 * time.Millisecond,
		FadeOut:     800 * time.Millisecond,
	}
}

// Duration returns the hold time of p. Non-positive values become zero.
func (t Timing) Duration(p Phase) time.Duration {
	var d time.Duration
	switch p {
	case PhaseDrawingHold:
		d = t.DrawingHold
	case PhaseScatter:
		d = t.Scatter
	case PhaseReassemble:
		d = t.Reassemble
	case PhaseColorHold:
		d = t.ColorHold
	case PhaseFadeOut:
		d = t.FadeOut
		if t.Cycle() == 0 {
			return MinCycle
		}
	}
	return max(d, 0)
}

// Cycle returns the length of one full loop, counting non-positive durations as zero.
func (t Timing) Cycle() time.Duration {
	var total time.Duration
	for _, d := range []time.Duration{t.DrawingHold, t.Scatter, t.Reassemble, t.ColorHold, t.FadeOut} {
		total += max(d, 0)
	}
	return total
}
