package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/httputil"
	"github.com/matzehuels/slicereveal/pkg/pipeline"
)

// renderOpts holds the render-only flags. Reveal options live in optionFlags.
type renderOpts struct {
	output  string // gif path, or directory for png frames
	formats string // comma-separated formats
	fps     int    // frames per second
	cycles  int    // number of full loops
}

// renderCommand creates the render command for offline exports.
//
// Default settings:
//   - format: gif
//   - fps: 25, cycles: 1
//   - output: <image>.gif and <image>_frames/ next to the input
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "render [image|url]",
		Short: "Export the reveal loop as a GIF, PNG frames or ANSI art",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(ro.formats)
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if cmd.Flags().Changed("fps") {
				opts.FPS = ro.fps
			}
			if cmd.Flags().Changed("cycles") {
				opts.Cycles = ro.cycles
			}
			if ro.output != "" {
				opts.Output = ro.output
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (gif, ansi) or directory (png)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): gif (default), png, ansi (comma-separated)")
	cmd.Flags().IntVar(&ro.fps, "fps", pipeline.DefaultFPS, "frames per second")
	cmd.Flags().IntVar(&ro.cycles, "cycles", pipeline.DefaultCycles, "number of full loops to export")
	flags.register(cmd)

	return cmd
}

// outputPaths derives the file written for each single-file format and the
// frame directory for png. With one format, output names the file or
// directory as given; with several it is the base path.
func outputPaths(output, input string, formats []string) (files map[string]string, frameDir string) {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if httputil.IsURL(input) {
		// Downloads land in the working directory.
		base = urlBase(input)
	}
	named := ""
	switch {
	case output == "":
	case len(formats) == 1:
		named = output
	default:
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	files = make(map[string]string)
	for _, f := range formats {
		switch f {
		case pipeline.FormatGIF:
			files[f] = base + ".gif"
		case pipeline.FormatANSI:
			files[f] = base + ".ans"
		case pipeline.FormatPNG:
			frameDir = base + "_frames"
			if named != "" {
				frameDir = named
			}
		}
	}
	if named != "" && frameDir == "" {
		for f := range files {
			files[f] = named
		}
	}
	return files, frameDir
}

// runRender loads the image, exports it and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options) error {
	files, frameDir := outputPaths(opts.Output, input, opts.Formats)
	opts.Output = frameDir

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	src, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()
	result, err := runner.Export(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	for format, data := range result.Artifacts {
		dst := files[format]
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", dst)
		}
		printFile(dst)
	}
	if len(result.Files) > 0 {
		printFile(frameDir)
		printDetail("%d png frames", len(result.Files))
	}
	printStats(result.Stats.Frames, result.Stats.RenderTime, result.Stats.CacheHit)
	printNextStep("Watch it live", appName+" play "+input)
	prog.done("Rendered "+filepath.Base(input), "frames", result.Stats.Frames, "rate", frameRate(result.Stats.Frames, result.Stats.RenderTime))
	return nil
}

// urlBase returns the last path element of rawURL without its extension.
func urlBase(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "image"
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return "image"
	}
	return strings.TrimSuffix(name, path.Ext(name))
}
