// Package sink provides output formats for rendered frames.
//
// # Overview
//
// A [Sink] receives frames in order and flushes on Close. This package
// provides:
//
//   - [GIF]: an animated GIF, dithered to a fixed palette and encoded on Close
//   - [PNGSequence]: one numbered PNG file per frame
//   - [ANSI]: half-block terminal art redrawn in place
//
// [Multi] fans one stream of frames out to several sinks:
//
//	out, _ := os.Create("reveal.gif")
//	frames, _ := sink.NewPNGSequence("frames", "reveal")
//	s := sink.Multi(sink.NewGIF(out, sink.WithFrameDelay(40*time.Millisecond)), frames)
//	defer s.Close()
//
// # Display Output
//
// On Linux the drm subpackage exposes a DRM dumb framebuffer as a
// draw.Image that also satisfies [Sink], for kiosk-style playback without a
// window system.
package sink
