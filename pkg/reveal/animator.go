package reveal

import (
	"sync"
	"time"

	"github.com/matzehuels/slicereveal/pkg/motion"
	"github.com/matzehuels/slicereveal/pkg/sequencer"
)

type sliceMotion struct {
	x, y, rotate, opacity, sketch motion.Tween
}

// Animator turns sequencer transitions into smoothly moving slice poses.
// It is safe for concurrent use: transitions typically arrive on a timer
// goroutine while frames are drawn on another.
type Animator struct {
	mu     sync.Mutex
	motion Motion
	slices []sliceMotion
}

// NewAnimator creates an animator resting at the targets of snap.
func NewAnimator(m Motion, snap sequencer.Snapshot) *Animator {
	a := &Animator{motion: m}
	a.resizeLocked(len(snap.Offsets), snap)
	return a
}

// Observe applies a sequencer transition. It has the sequencer.Observer signature.
func (a *Animator) Observe(tr sequencer.Transition) {
	a.Apply(tr.At, tr.Snapshot)
}

// Apply retargets every slice toward the state in snap, starting at now.
// A change in slice count keeps the tweens of surviving indices and rests
// new slices at their targets.
func (a *Animator) Apply(now time.Time, snap sequencer.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(snap.Offsets) != len(a.slices) {
		a.resizeLocked(len(snap.Offsets), snap)
	}

	n := len(a.slices)
	opacityTr := a.motion.OpacityTransition()
	filterTr := a.motion.FilterTransition()
	for i := range a.slices {
		t := TargetFor(snap.State, snap.Offsets[i], a.motion.ScatteredOpacity)
		tr := a.motion.TransformTransition(i, n, snap.State.Assembled)
		sm := &a.slices[i]
		sm.x.Retarget(now, t.X, tr)
		sm.y.Retarget(now, t.Y, tr)
		sm.rotate.Retarget(now, t.Rotate, tr)
		sm.opacity.Retarget(now, t.Opacity, opacityTr)
		sm.sketch.Retarget(now, t.Sketch, filterTr)
	}
}

// SetMotion replaces the transition settings for future retargets.
func (a *Animator) SetMotion(m Motion) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.motion = m
}

// Len returns the number of slices.
func (a *Animator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.slices)
}

// Poses returns the pose of every slice at now, in index order.
func (a *Animator) Poses(now time.Time) []Pose {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.slices)
	poses := make([]Pose, n)
	for i := range a.slices {
		sm := &a.slices[i]
		poses[i] = Pose{
			Index:   i,
			Band:    BandOf(i, n),
			X:       sm.x.Value(now),
			Y:       sm.y.Value(now),
			Rotate:  sm.rotate.Value(now),
			Opacity: sm.opacity.Value(now),
			Sketch:  sm.sketch.Value(now),
		}
	}
	return poses
}

// Settled reports whether every slice has reached its target at now.
func (a *Animator) Settled(now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.slices {
		sm := &a.slices[i]
		if !sm.x.Done(now) || !sm.y.Done(now) || !sm.rotate.Done(now) || !sm.opacity.Done(now) || !sm.sketch.Done(now) {
			return false
		}
	}
	return true
}

func (a *Animator) resizeLocked(n int, snap sequencer.Snapshot) {
	next := make([]sliceMotion, n)
	copy(next, a.slices)
	for i := len(a.slices); i < n; i++ {
		t := TargetFor(snap.State, snap.Offsets[i], a.motion.ScatteredOpacity)
		next[i] = sliceMotion{
			x:       motion.NewTween(t.X),
			y:       motion.NewTween(t.Y),
			rotate:  motion.NewTween(t.Rotate),
			opacity: motion.NewTween(t.Opacity),
			sketch:  motion.NewTween(t.Sketch),
		}
	}
	a.slices = next
}
