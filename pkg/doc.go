// Package pkg provides the libraries behind slicereveal, an image split-reveal
// animation.
//
// # Overview
//
// An image is cut into N bands, the bands scatter as a pencil sketch, come
// back together in color, hold, fade out and start again. The pkg directory
// is organized into four areas:
//
//  1. [sequencer] - The timed phase loop (the only stateful core)
//  2. [reveal], [motion], [sketch], [render] - Turning phase state into pixels
//  3. [pipeline] - Orchestration (load → prepare → play or export)
//  4. [cache], [httputil], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The data flow through slicereveal:
//
//	image file or URL
//	         ↓
//	    [pipeline] Runner.Load (decode, hash)
//	         ↓
//	    [render] Prepare (fit to canvas, [sketch] filter; cached in [cache])
//	         ↓
//	    [sequencer] phases → [reveal] Animator poses ([motion] tweens)
//	         ↓
//	    [render] Compositor → [render/sink] (GIF, PNG frames, ANSI, DRM)
//
// # Quick Start
//
// Export one loop as a GIF:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	src, _ := runner.Load(ctx, "photo.jpg")
//	result, _ := runner.Export(ctx, src, pipeline.Options{Slices: 4, FPS: 25})
//	os.WriteFile("photo.gif", result.Artifacts[pipeline.FormatGIF], 0o644)
//
// Or run a live instance and pull frames from it:
//
//	player, _ := runner.NewPlayer(ctx, src, pipeline.Options{})
//	defer player.Close()
//	frame := player.Frame()
//
// # Main Packages
//
// [sequencer] - Repeating, cancelable state machine: DrawingHold → Scatter →
// Reassemble → ColorHold → FadeOut. Scatter offsets are regenerated every
// cycle. Time comes from a Scheduler, either the wall clock or a manual clock
// for tests and offline export.
//
// [reveal] - Band geometry and per-slice targets. The Animator turns phase
// transitions into staggered tweens.
//
// [render/diagram] - The phase loop as a Graphviz state diagram.
//
// [cache] - Prepared layers keyed by image hash and options, stored in files,
// Redis or MongoDB.
//
// # Testing
//
// Run tests:
//
//	go test ./...                             # All tests
//	go test ./pkg/sequencer/...               # Specific package
//	go test -tags integration ./pkg/cache/... # Needs SLICEREVEAL_TEST_MONGO_URL
//
// [sequencer]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/sequencer
// [reveal]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/reveal
// [motion]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/motion
// [sketch]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/sketch
// [render]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/render/sink
// [render/diagram]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/render/diagram
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/slicereveal/pkg/buildinfo
package pkg
