package cli

import (
	"github.com/spf13/cobra"
)

// displayCommand creates the display command for the Linux framebuffer.
func (c *CLI) displayCommand() *cobra.Command {
	var card, fps int
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "display [image|url]",
		Short: "Show the reveal full screen on a DRM framebuffer (Linux)",
		Long: `Show the reveal loop on every connected output of a DRM card.

Run from a virtual console without a display server; the previous screen
contents are restored on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runDisplay(cmd.Context(), args[0], card, fps, opts)
		},
	}

	cmd.Flags().IntVar(&card, "card", 0, "DRM card number (/dev/dri/cardN)")
	cmd.Flags().IntVar(&fps, "fps", 30, "redraw rate")
	flags.register(cmd)

	return cmd
}
