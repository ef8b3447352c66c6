package sequencer

import (
	"math"
	"testing"
	"time"
)

// seqRand returns a fixed sequence of values, cycling.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func TestGenerateOffsetsExact(t *testing.T) {
	rng := &seqRand{vals: []float64{0, 1, 0.5, 0.75, 0.25, 0.5}}
	got := GenerateOffsets(rng, 2, Spread{X: 500, Y: 300, Rotation: 35})

	want := []Offset{
		{X: -250, Y: 150, Rotate: 0},
		{X: 125, Y: -75, Rotate: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("offset %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGenerateOffsetsWithinSpread(t *testing.T) {
	spread := Spread{X: 500, Y: 300, Rotation: 35}
	rng := NewRand(42)

	for range 50 {
		for i, o := range GenerateOffsets(rng, 9, spread) {
			if math.Abs(o.X) > spread.X/2 {
				t.Errorf("offset %d X = %v, want within ±%v", i, o.X, spread.X/2)
			}
			if math.Abs(o.Y) > spread.Y/2 {
				t.Errorf("offset %d Y = %v, want within ±%v", i, o.Y, spread.Y/2)
			}
			if math.Abs(o.Rotate) > spread.Rotation/2 {
				t.Errorf("offset %d Rotate = %v, want within ±%v", i, o.Rotate, spread.Rotation/2)
			}
		}
	}
}

func TestGenerateOffsetsNegativeCount(t *testing.T) {
	if got := GenerateOffsets(NewRand(1), -3, DefaultSpread()); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestScatterRedrawsOffsets(t *testing.T) {
	s, sched, _ := newTestSequencer(t, DefaultConfig())
	s.Start()
	timing := DefaultTiming()

	sched.Advance(timing.DrawingHold)
	first := s.Snapshot().Offsets

	sched.Advance(timing.Cycle())
	if got := s.Snapshot().Phase; got != PhaseScatter {
		t.Fatalf("Phase = %v, want %v", got, PhaseScatter)
	}
	second := s.Snapshot().Offsets

	allEqual := true
	for i := range first {
		if first[i] != second[i] {
			allEqual = false
		}
	}
	if allEqual {
		t.Error("consecutive scatter phases produced identical offsets")
	}
}

func TestSeededSequencersAgree(t *testing.T) {
	run := func() []Offset {
		sched := NewManualScheduler(epoch)
		s := New(DefaultConfig(), WithScheduler(sched), WithRand(NewRand(99)))
		s.Start()
		sched.Advance(2 * time.Second)
		return s.Snapshot().Offsets
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("offset %d differs between seeded runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
