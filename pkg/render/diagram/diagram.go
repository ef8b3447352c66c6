package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/slicereveal/pkg/render"
	"github.com/matzehuels/slicereveal/pkg/sequencer"
)

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists the supported output formats.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG}

// Options configures the phase diagram.
type Options struct {
	// Timing labels each phase with its hold time.
	Timing sequencer.Timing

	// Theme sets the background and ink colors.
	Theme render.Theme

	// Current, when not idle, is drawn highlighted.
	Current sequencer.Phase
}

// ToDOT converts the reveal loop to Graphviz DOT: one node per phase,
// labelled with its duration and flags, and edges in loop order.
func ToDOT(opts Options) string {
	theme := opts.Theme
	if theme.Name == "" {
		theme = render.ThemeDark
	}
	bg, fg := theme.Background.Hex(), theme.Foreground.Hex()

	var buf bytes.Buffer
	buf.WriteString("digraph reveal {\n")
	buf.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", bg)
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded\", color=%q, fontcolor=%q, fontsize=14, margin=\"0.2,0.1\"];\n", fg, fg)
	fmt.Fprintf(&buf, "  edge [color=%q, fontcolor=%q, fontsize=11];\n", fg, fg)
	buf.WriteString("\n")

	for _, p := range sequencer.Phases {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(p, opts.Timing.Duration(p)))}
		if p == opts.Current {
			attrs = append(attrs, "style=\"rounded,filled\"", fmt.Sprintf("fillcolor=%q", fg), fmt.Sprintf("fontcolor=%q", bg))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, p := range sequencer.Phases {
		attrs := ""
		if p == sequencer.PhaseFadeOut {
			attrs = fmt.Sprintf(" [label=%q, style=dashed]", "loop "+fmtDuration(opts.Timing.Cycle()))
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", p.String(), p.Next().String(), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p sequencer.Phase, d time.Duration) string {
	st := p.State()
	var flags []string
	if st.Assembled {
		flags = append(flags, "assembled")
	} else {
		flags = append(flags, "scattered")
	}
	if st.Outline {
		flags = append(flags, "sketch")
	} else {
		flags = append(flags, "color")
	}
	if !st.Visible {
		flags = append(flags, "hidden")
	}
	return p.String() + "\n" + fmtDuration(d) + "\n" + strings.Join(flags, " · ")
}

func fmtDuration(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

// Render converts the diagram to format. DOT is returned as is; SVG and PNG
// are laid out with Graphviz.
func Render(ctx context.Context, opts Options, format string) ([]byte, error) {
	dot := ToDOT(opts)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		return renderGraph(ctx, dot, graphviz.PNG)
	}
	return nil, fmt.Errorf("unsupported diagram format %q", format)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderGraph(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

func renderGraph(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root tag with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
