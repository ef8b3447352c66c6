package reveal

import (
	"time"

	"github.com/matzehuels/slicereveal/pkg/motion"
	"github.com/matzehuels/slicereveal/pkg/sequencer"
)

// Pose is the rendered state of one slice at one instant.
// X and Y are pixel offsets, Rotate is in degrees about the canvas center.
// Sketch is the weight of the drawing layer over the color layer: 0 is full
// color, 1 is the pencil sketch.
type Pose struct {
	Index   int
	Band    Band
	X       float64
	Y       float64
	Rotate  float64
	Opacity float64
	Sketch  float64
}

// Identity reports whether the pose has no translation or rotation.
func (p Pose) Identity() bool {
	return p.X == 0 && p.Y == 0 && p.Rotate == 0
}

// Target is where a slice is heading.
type Target struct {
	X, Y, Rotate, Opacity, Sketch float64
}

// TargetFor returns the target of a slice given the sequencer flags and the
// slice's last scatter offset. Assembled slices always target the identity
// transform; invisible slices always target opacity 0.
func TargetFor(state sequencer.State, off sequencer.Offset, scatteredOpacity float64) Target {
	var t Target
	if state.Outline {
		t.Sketch = 1
	}
	if !state.Assembled {
		t.X, t.Y, t.Rotate = off.X, off.Y, off.Rotate
	}
	switch {
	case !state.Visible:
		t.Opacity = 0
	case state.Assembled:
		t.Opacity = 1
	default:
		t.Opacity = clamp01(scatteredOpacity)
	}
	return t
}

// Motion holds the per-slice transition settings.
type Motion struct {
	AssembleDuration time.Duration
	AssembleStagger  time.Duration // delay per slice index when assembling
	ScatterDuration  time.Duration
	ScatterStagger   time.Duration // delay per reversed index when scattering
	OpacityDuration  time.Duration
	FilterDuration   time.Duration // sketch/color crossfade
	ScatteredOpacity float64
}

// DefaultMotion returns the standard transition settings.
func DefaultMotion() Motion {
	return Motion{
		AssembleDuration: 1200 * time.Millisecond,
		AssembleStagger:  150 * time.Millisecond,
		ScatterDuration:  900 * time.Millisecond,
		ScatterStagger:   80 * time.Millisecond,
		OpacityDuration:  500 * time.Millisecond,
		FilterDuration:   800 * time.Millisecond,
		ScatteredOpacity: 0.75,
	}
}

// TransformTransition returns the transition slice i of n uses when moving
// toward the assembled or scattered layout. Assembly enters in index order;
// scattering leaves in reverse index order.
func (m Motion) TransformTransition(i, n int, assembling bool) motion.Transition {
	if assembling {
		return motion.Transition{
			Duration: m.AssembleDuration,
			Delay:    time.Duration(i) * m.AssembleStagger,
			Ease:     motion.EaseAssemble,
		}
	}
	return motion.Transition{
		Duration: m.ScatterDuration,
		Delay:    time.Duration(max(n-1-i, 0)) * m.ScatterStagger,
		Ease:     motion.EaseScatter,
	}
}

// OpacityTransition returns the opacity transition. It is not staggered.
func (m Motion) OpacityTransition() motion.Transition {
	return motion.Transition{Duration: m.OpacityDuration, Ease: motion.EaseInOut}
}

// FilterTransition returns the sketch/color crossfade. It is not staggered.
func (m Motion) FilterTransition() motion.Transition {
	return motion.Transition{Duration: m.FilterDuration, Ease: motion.EaseInOut}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
