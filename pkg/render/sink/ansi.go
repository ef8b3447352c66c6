package sink

import (
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

const halfBlock = "▀"

// ANSI renders frames as terminal art. Each character cell shows two
// vertically stacked pixels: the upper one as the foreground of a half
// block, the lower one as the background.
type ANSI struct {
	w      io.Writer
	cols   int
	rows   int
	frames int
}

// NewANSI returns a sink drawing cols×rows cells to w. Each frame after the
// first moves the cursor back to the top-left corner so frames overwrite
// each other in place.
func NewANSI(w io.Writer, cols, rows int) *ANSI {
	return &ANSI{w: w, cols: max(cols, 1), rows: max(rows, 1)}
}

// WriteFrame draws frame.
func (a *ANSI) WriteFrame(frame image.Image) error {
	var sb strings.Builder
	if a.frames > 0 {
		sb.WriteString("\x1b[H")
	}
	sb.WriteString(Halfblocks(frame, a.cols, a.rows))
	a.frames++
	_, err := io.WriteString(a.w, sb.String())
	return err
}

// Close does nothing.
func (a *ANSI) Close() error {
	return nil
}

// Halfblocks renders img scaled to cols×rows cells, one line per row.
func Halfblocks(img image.Image, cols, rows int) string {
	cols, rows = max(cols, 1), max(rows, 1)
	small := imaging.Resize(img, cols, rows*2, imaging.Box)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := hexOf(small.NRGBAAt(x, 2*y))
			bottom := hexOf(small.NRGBAAt(x, 2*y+1))
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			sb.WriteString(style.Render(halfBlock))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func hexOf(c color.NRGBA) string {
	c.A = 0xff
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
