package sink

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestGIFEncodesAllFrames(t *testing.T) {
	var buf closeRecorder
	g := NewGIF(&buf, WithFrameDelay(50*time.Millisecond), WithLoopCount(0))
	for _, c := range []color.Color{color.White, color.Black, color.NRGBA{R: 255, A: 255}} {
		if err := g.WriteFrame(solid(6, 4, c)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !buf.closed {
		t.Error("underlying writer not closed")
	}

	anim, err := gif.DecodeAll(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("decoded %d frames, want 3", len(anim.Image))
	}
	for i, d := range anim.Delay {
		if d != 5 {
			t.Errorf("frame %d delay = %d, want 5", i, d)
		}
	}
	if got := anim.Image[0].Bounds(); got != image.Rect(0, 0, 6, 4) {
		t.Errorf("frame bounds = %v, want 6x4", got)
	}

	if err := g.WriteFrame(solid(1, 1, color.White)); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteFrame after Close = %v, want ErrClosed", err)
	}
}

func TestGIFWithoutFramesFails(t *testing.T) {
	var buf bytes.Buffer
	if err := NewGIF(&buf).Close(); err == nil {
		t.Error("Close() with no frames error = nil, want error")
	}
}

func TestFrameDelayRounding(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{time.Millisecond, 1},
		{40 * time.Millisecond, 4},
		{33 * time.Millisecond, 3},
		{time.Second, 100},
	}
	for _, tt := range tests {
		g := NewGIF(&bytes.Buffer{}, WithFrameDelay(tt.d))
		if g.delay != tt.want {
			t.Errorf("WithFrameDelay(%v) delay = %d, want %d", tt.d, g.delay, tt.want)
		}
	}
}

func TestPNGSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	seq, err := NewPNGSequence(dir, "reveal")
	if err != nil {
		t.Fatalf("NewPNGSequence: %v", err)
	}
	for range 3 {
		if err := seq.WriteFrame(solid(2, 2, color.White)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	paths := seq.Paths()
	if len(paths) != 3 {
		t.Fatalf("len(Paths()) = %d, want 3", len(paths))
	}
	if want := filepath.Join(dir, "reveal_00002.png"); paths[2] != want {
		t.Errorf("Paths()[2] = %q, want %q", paths[2], want)
	}

	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 2 {
		t.Errorf("width = %d, want 2", img.Bounds().Dx())
	}
}

func TestHalfblocksShape(t *testing.T) {
	out := Halfblocks(solid(40, 40, color.White), 10, 5)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	for i, line := range lines {
		if got := strings.Count(line, halfBlock); got != 10 {
			t.Errorf("line %d has %d cells, want 10", i, got)
		}
	}
}

func TestANSIRehomesAfterFirstFrame(t *testing.T) {
	var buf bytes.Buffer
	a := NewANSI(&buf, 4, 2)
	a.WriteFrame(solid(8, 8, color.Black))
	first := buf.String()
	if strings.HasPrefix(first, "\x1b[H") {
		t.Error("first frame starts with cursor home")
	}
	buf.Reset()
	a.WriteFrame(solid(8, 8, color.Black))
	if !strings.HasPrefix(buf.String(), "\x1b[H") {
		t.Error("second frame does not start with cursor home")
	}
	if !utf8.ValidString(buf.String()) {
		t.Error("output is not valid UTF-8")
	}
}

type failingSink struct{ closed bool }

func (f *failingSink) WriteFrame(image.Image) error { return errors.New("boom") }
func (f *failingSink) Close() error                 { f.closed = true; return errors.New("close boom") }

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	g := NewGIF(&buf)
	bad := &failingSink{}
	m := Multi(g, bad)

	if err := m.WriteFrame(solid(2, 2, color.White)); err == nil {
		t.Error("WriteFrame error = nil, want error from failing sink")
	}
	if g.Len() != 1 {
		t.Errorf("gif frames = %d, want 1", g.Len())
	}
	if err := m.Close(); err == nil || err.Error() != "close boom" {
		t.Errorf("Close() = %v, want close boom", err)
	}
	if !bad.closed {
		t.Error("failing sink not closed")
	}
}
