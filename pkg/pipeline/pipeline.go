// Package pipeline provides the load → prepare → animate pipeline for
// split-reveal renders.
//
// This package ties the sequencer, animator, compositor and sinks together
// so the CLI, the terminal player and the preview server behave identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and decode the source image (PNG, JPEG, GIF, WebP, BMP, TIFF)
//  2. Prepare: Fit it to the canvas and derive the sketch layer (cached)
//  3. Animate: Either live, through a [Player] on the wall clock, or offline,
//     through [Runner.Export] on a virtual clock
//
// # Usage
//
// Export a GIF:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	src, err := runner.Load(ctx, "photo.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Export(ctx, src, pipeline.Options{Slices: 4})
//	gif := result.Artifacts["gif"]
//
// Run a live instance:
//
//	player, err := runner.NewPlayer(ctx, src, pipeline.Options{})
//	defer player.Close()
//	frame := player.Frame()
//	player.SetSlices(5)
package pipeline
