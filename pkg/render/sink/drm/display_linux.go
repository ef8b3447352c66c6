//go:build linux

package drm

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/kytart/godrm/pkg/drm"
	"github.com/kytart/godrm/pkg/mode"
	"golang.org/x/image/draw"
	"launchpad.net/gommap"
)

type framebuffer struct {
	*mode.FB
	id   uint32
	data []byte
}

type output struct {
	mode      *mode.Modeset
	fb        *framebuffer
	savedCrtc *mode.Crtc
}

// Display is a draw.Image backed by the framebuffer of every connected
// output. Pixels set on it appear on screen immediately; bounds are those of
// the first output.
type Display struct {
	file    *os.File
	modeset *mode.SimpleModeset
	outputs []*output
}

var _ draw.Image = (*Display)(nil)

// Open takes over card n and allocates a framebuffer per connected output.
func Open(card int) (*Display, error) {
	file, err := drm.OpenCard(card)
	if err != nil {
		return nil, fmt.Errorf("open drm card: %w", err)
	}
	if !drm.HasDumbBuffer(file) {
		file.Close()
		return nil, errors.New("drm device does not support dumb buffers")
	}

	modeset, err := mode.NewSimpleModeset(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("create modeset: %w", err)
	}

	d := &Display{file: file, modeset: modeset}
	for _, mod := range modeset.Modesets {
		out, err := d.setupOutput(mod)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("setup output: %w", err)
		}
		d.outputs = append(d.outputs, out)
	}
	if len(d.outputs) == 0 {
		d.Close()
		return nil, errors.New("no connected outputs")
	}
	return d, nil
}

// Close restores the saved CRTC of every output and releases the card.
func (d *Display) Close() error {
	var errs []error
	for _, out := range d.outputs {
		errs = append(errs, d.destroyOutput(out))
	}
	d.outputs = nil
	errs = append(errs, d.file.Close())
	return errors.Join(errs...)
}

// ColorModel implements image.Image.
func (d *Display) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (d *Display) Bounds() image.Rectangle {
	m := d.outputs[0].mode
	return image.Rect(0, 0, int(m.Width), int(m.Height))
}

// At implements image.Image.
func (d *Display) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(d.Bounds()) {
		return color.RGBA{}
	}
	fb := d.outputs[0].fb
	return getPixel(fb.data, pixelOffset(fb.Pitch, x, y))
}

// Set implements draw.Image. The pixel is written to every output large
// enough to hold it.
func (d *Display) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 {
		return
	}
	for _, out := range d.outputs {
		if x >= int(out.mode.Width) || y >= int(out.mode.Height) {
			continue
		}
		putPixel(out.fb.data, pixelOffset(out.fb.Pitch, x, y), c)
	}
}

// WriteFrame draws frame centered on the screen. Display therefore also
// satisfies sink.Sink.
func (d *Display) WriteFrame(frame image.Image) error {
	b, fb := d.Bounds(), frame.Bounds()
	at := image.Pt((b.Dx()-fb.Dx())/2, (b.Dy()-fb.Dy())/2)
	draw.Draw(d, fb.Sub(fb.Min).Add(at), frame, fb.Min, draw.Src)
	return nil
}

func (d *Display) setupOutput(mod mode.Modeset) (*output, error) {
	fb, err := d.createFramebuffer(&mod)
	if err != nil {
		return nil, err
	}

	saved, err := mode.GetCrtc(d.file, mod.Crtc)
	if err != nil {
		return nil, fmt.Errorf("get CRTC for connector %d: %w", mod.Conn, err)
	}

	err = mode.SetCrtc(d.file, mod.Crtc, fb.id, 0, 0, &mod.Conn, 1, &mod.Mode)
	if err != nil {
		return nil, fmt.Errorf("set CRTC for connector %d: %w", mod.Conn, err)
	}

	return &output{mode: &mod, fb: fb, savedCrtc: saved}, nil
}

func (d *Display) createFramebuffer(dev *mode.Modeset) (*framebuffer, error) {
	fb, err := mode.CreateFB(d.file, dev.Width, dev.Height, 32)
	if err != nil {
		return nil, fmt.Errorf("create framebuffer: %w", err)
	}

	id, err := mode.AddFB(d.file, dev.Width, dev.Height, 24, 32, fb.Pitch, fb.Handle)
	if err != nil {
		return nil, fmt.Errorf("create dumb buffer: %w", err)
	}

	offset, err := mode.MapDumb(d.file, fb.Handle)
	if err != nil {
		return nil, fmt.Errorf("map dumb: %w", err)
	}

	mmap, err := gommap.MapAt(0, d.file.Fd(), int64(offset), int64(fb.Size), gommap.PROT_READ|gommap.PROT_WRITE, gommap.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap framebuffer: %w", err)
	}
	clear(mmap)

	return &framebuffer{FB: fb, id: id, data: mmap}, nil
}

func (d *Display) destroyOutput(out *output) error {
	if err := gommap.MMap(out.fb.data).UnsafeUnmap(); err != nil {
		return fmt.Errorf("munmap framebuffer: %w", err)
	}
	if err := mode.RmFB(d.file, out.fb.id); err != nil {
		return fmt.Errorf("remove framebuffer: %w", err)
	}
	if err := mode.DestroyDumb(d.file, out.fb.Handle); err != nil {
		return fmt.Errorf("destroy dumb buffer: %w", err)
	}
	return d.modeset.SetCrtc(out.mode, out.savedCrtc)
}
