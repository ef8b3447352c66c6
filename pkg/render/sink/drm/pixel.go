// Package drm scans frames out to a Linux DRM display through a dumb
// framebuffer. It needs read/write access to /dev/dri/card0 and no running
// compositor on that card.
package drm

import (
	"encoding/binary"
	"image/color"
)

// packXRGB returns c as a little-endian XRGB8888 word.
func packXRGB(c color.Color) uint32 {
	r, g, b, a := c.RGBA()
	return (a>>8)<<24 | (r>>8)<<16 | (g>>8)<<8 | b>>8
}

func unpackXRGB(v uint32) color.RGBA {
	return color.RGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// pixelOffset returns the byte offset of (x, y) in a 32bpp buffer.
func pixelOffset(pitch uint32, x, y int) int {
	return int(pitch)*y + x*4
}

func putPixel(buf []byte, off int, c color.Color) {
	binary.LittleEndian.PutUint32(buf[off:off+4], packXRGB(c))
}

func getPixel(buf []byte, off int) color.RGBA {
	return unpackXRGB(binary.LittleEndian.Uint32(buf[off : off+4]))
}
