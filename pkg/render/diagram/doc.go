// Package diagram draws the reveal loop as a state diagram.
//
// Each phase becomes a node labelled with its hold time and the flags it
// sets; edges follow the loop order and the edge closing the loop carries
// the cycle length.
//
//	dot := diagram.ToDOT(diagram.Options{Timing: sequencer.DefaultTiming()})
//	svg, err := diagram.RenderSVG(ctx, dot)
//
// [Render] dispatches on a format name and is what the CLI and the preview
// server call.
//
// # Dependencies
//
// Layout runs in-process through [github.com/goccy/go-graphviz]; no Graphviz
// installation is needed.
package diagram
