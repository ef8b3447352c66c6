package sequencer

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source used for scatter offsets.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func newClockRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// Offset is the displacement of one slice while scattered.
// X and Y are in pixels, Rotate in degrees.
type Offset struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Rotate float64 `json:"rotate"`
}

// Spread bounds the scatter offsets. Each component of an offset is drawn
// uniformly from [-v/2, v/2] of the matching field.
type Spread struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// DefaultSpread returns the standard scatter distance and rotation range.
func DefaultSpread() Spread {
	return Spread{X: 500, Y: 300, Rotation: 35}
}

// GenerateOffsets draws n offsets from rng.
func GenerateOffsets(rng Rand, n int, s Spread) []Offset {
	offsets := make([]Offset, max(n, 0))
	for i := range offsets {
		offsets[i] = Offset{
			X:      (rng.Float64() - 0.5) * s.X,
			Y:      (rng.Float64() - 0.5) * s.Y,
			Rotate: (rng.Float64() - 0.5) * s.Rotation,
		}
	}
	return offsets
}
