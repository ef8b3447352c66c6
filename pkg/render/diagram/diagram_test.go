package diagram

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/slicereveal/pkg/render"
	"github.com/matzehuels/slicereveal/pkg/sequencer"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(Options{Timing: sequencer.DefaultTiming(), Current: sequencer.PhaseScatter})

	for _, want := range []string{
		`"drawing_hold" -> "scatter";`,
		`"scatter" -> "reassemble";`,
		`"reassemble" -> "color_hold";`,
		`"color_hold" -> "fade_out";`,
		`"fade_out" -> "drawing_hold" [label="loop 7.7s", style=dashed];`,
		`bgcolor="#0a0a0a"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT missing %q\n%s", want, dot)
		}
	}

	if got := strings.Count(dot, "fillcolor="); got != 1 {
		t.Errorf("highlighted nodes = %d, want 1", got)
	}
}

func TestToDOTLightThemeNoHighlight(t *testing.T) {
	dot := ToDOT(Options{Timing: sequencer.DefaultTiming(), Theme: render.ThemeLight})
	if !strings.Contains(dot, `bgcolor="#ffffff"`) {
		t.Error("light theme background not applied")
	}
	if strings.Contains(dot, "fillcolor=") {
		t.Error("idle current phase highlighted a node")
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		phase sequencer.Phase
		d     time.Duration
		want  string
	}{
		{sequencer.PhaseDrawingHold, 2 * time.Second, "drawing_hold\n2s\nassembled · sketch"},
		{sequencer.PhaseScatter, 1600 * time.Millisecond, "scatter\n1.6s\nscattered · sketch"},
		{sequencer.PhaseColorHold, 1500 * time.Millisecond, "color_hold\n1.5s\nassembled · color"},
		{sequencer.PhaseFadeOut, 800 * time.Millisecond, "fade_out\n0.8s\nassembled · color · hidden"},
	}
	for _, tt := range tests {
		if got := fmtLabel(tt.phase, tt.d); got != tt.want {
			t.Errorf("fmtLabel(%v) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	opts := Options{Timing: sequencer.DefaultTiming()}

	dot, err := Render(ctx, opts, FormatDOT)
	if err != nil || !bytes.HasPrefix(dot, []byte("digraph reveal {")) {
		t.Errorf("Render(dot) = %q, %v", dot, err)
	}

	svg, err := Render(ctx, opts, FormatSVG)
	if err != nil {
		t.Fatalf("Render(svg) error = %v", err)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Errorf("svg root not normalized: %.120s", svg)
	}

	img, err := Render(ctx, opts, FormatPNG)
	if err != nil {
		t.Fatalf("Render(png) error = %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(img)); err != nil {
		t.Errorf("png output does not decode: %v", err)
	}

	if _, err := Render(ctx, opts, "pdf"); err == nil {
		t.Error("Render(pdf) error = nil, want error")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got := string(normalizeViewBox(in)); got != want {
		t.Errorf("normalizeViewBox = %q, want %q", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("normalizeViewBox without viewBox = %q", got)
	}
}
