package sketch

import (
	"image"
	"image/color"
	"testing"
)

func TestLevel(t *testing.T) {
	light := New(false)
	dark := New(true)

	tests := []struct {
		lum       float64
		wantLight float64
	}{
		{0, 0},
		{0.3, 0},
		{0.4, 0.5},
		{0.5, 1},
		{1, 1},
	}
	for _, tt := range tests {
		if got := light.Level(tt.lum); got < tt.wantLight-1e-9 || got > tt.wantLight+1e-9 {
			t.Errorf("light Level(%v) = %v, want %v", tt.lum, got, tt.wantLight)
		}
		if got, want := dark.Level(tt.lum), 1-tt.wantLight; got < want-1e-9 || got > want+1e-9 {
			t.Errorf("dark Level(%v) = %v, want %v", tt.lum, got, want)
		}
	}
}

func TestApplyPreservesAlphaAndGrays(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 10, B: 10, A: 128})
	src.SetNRGBA(2, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 0})

	out := New(false).Apply(src)
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("white pixel = %v, want white", got)
	}
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{0, 0, 0, 128}) {
		t.Errorf("dark pixel = %v, want black with alpha 128", got)
	}
	if got := out.NRGBAAt(2, 0); got.A != 0 || got.R != got.G || got.G != got.B {
		t.Errorf("transparent red = %v, want transparent gray", got)
	}

	inv := New(true).Apply(src)
	if got := inv.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("dark theme white pixel = %v, want black", got)
	}
	if got := inv.NRGBAAt(1, 0); got != (color.NRGBA{255, 255, 255, 128}) {
		t.Errorf("dark theme dark pixel = %v, want white with alpha 128", got)
	}
}

func TestHandle(t *testing.T) {
	a, b := New(true), New(true)
	if a.Handle() == "" || a.Handle() == b.Handle() {
		t.Errorf("handles %q and %q, want distinct non-empty", a.Handle(), b.Handle())
	}
	if got := a.WithDark(false); got.Handle() != a.Handle() || got.Dark {
		t.Errorf("WithDark(false) = %v handle %q", got, got.Handle())
	}
}
