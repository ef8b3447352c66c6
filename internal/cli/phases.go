package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/pipeline"
	"github.com/matzehuels/slicereveal/pkg/render/diagram"
)

// phasesCommand creates the phases command, which draws the reveal loop
// with the configured timing.
func (c *CLI) phasesCommand() *cobra.Command {
	var output, format string
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "phases",
		Short: "Draw the phase loop as a diagram",
		Long: `Draw the reveal loop as a state diagram: one node per phase with its hold
time and flags. Timing flags and the config file apply.

Without --output the diagram is written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateChoice("format", format, diagram.Formats); err != nil {
				return err
			}
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", output)
				}
				defer f.Close()
				w = f
			}
			if err := c.runPhases(cmd.Context(), w, format, opts); err != nil {
				return err
			}
			if output != "" {
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", diagram.FormatSVG, "output format: dot, svg, png")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runPhases(ctx context.Context, w io.Writer, format string, opts pipeline.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	data, err := diagram.Render(ctx, diagram.Options{
		Timing: opts.SequencerTiming(),
		Theme:  opts.ThemeValue(),
	}, format)
	if err != nil {
		return fmt.Errorf("render diagram: %w", err)
	}
	_, err = w.Write(data)
	return err
}
