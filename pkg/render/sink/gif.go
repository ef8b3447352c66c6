package sink

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"time"

	"golang.org/x/image/draw"
)

// ErrClosed is returned when writing to a closed sink.
var ErrClosed = errors.New("sink closed")

// GIFOption configures a GIF sink.
type GIFOption func(*GIF)

// WithFrameDelay sets the delay between frames. GIF delays have a
// resolution of 10ms; shorter delays round up to one tick.
func WithFrameDelay(d time.Duration) GIFOption {
	return func(g *GIF) { g.delay = max(int((d+5*time.Millisecond)/(10*time.Millisecond)), 1) }
}

// WithLoopCount sets how often the animation repeats. 0 loops forever,
// -1 plays once.
func WithLoopCount(n int) GIFOption {
	return func(g *GIF) { g.anim.LoopCount = n }
}

// WithPalette sets the palette frames are dithered to.
func WithPalette(p color.Palette) GIFOption {
	return func(g *GIF) { g.palette = p }
}

// WithoutDither maps each pixel to its nearest palette color instead of
// Floyd-Steinberg error diffusion.
func WithoutDither() GIFOption {
	return func(g *GIF) { g.drawer = draw.Src }
}

// GIF buffers frames and encodes an animated GIF on Close.
type GIF struct {
	w       io.WriteCloser
	anim    gif.GIF
	delay   int
	palette color.Palette
	drawer  draw.Drawer
	closed  bool
}

// NewGIF returns a GIF sink writing to w. If w is an io.Closer it is closed
// by Close.
func NewGIF(w io.Writer, opts ...GIFOption) *GIF {
	wc, ok := w.(io.WriteCloser)
	if !ok {
		wc = nopCloser{w}
	}
	g := &GIF{
		w:       wc,
		delay:   4,
		palette: palette.Plan9,
		drawer:  draw.FloydSteinberg,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Len returns the number of buffered frames.
func (g *GIF) Len() int {
	return len(g.anim.Image)
}

// WriteFrame quantizes frame to the palette and buffers it.
func (g *GIF) WriteFrame(frame image.Image) error {
	if g.closed {
		return ErrClosed
	}
	b := frame.Bounds()
	pm := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), g.palette)
	g.drawer.Draw(pm, pm.Bounds(), frame, b.Min)
	g.anim.Image = append(g.anim.Image, pm)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	g.anim.Disposal = append(g.anim.Disposal, gif.DisposalNone)
	return nil
}

// Close encodes the buffered frames and closes the underlying writer.
func (g *GIF) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	if len(g.anim.Image) == 0 {
		g.w.Close()
		return errors.New("gif: no frames")
	}
	if err := gif.EncodeAll(g.w, &g.anim); err != nil {
		g.w.Close()
		return err
	}
	return g.w.Close()
}
