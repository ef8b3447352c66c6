package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/pkg/pipeline"
	"github.com/matzehuels/slicereveal/pkg/render"
	"github.com/matzehuels/slicereveal/pkg/render/diagram"
	"github.com/matzehuels/slicereveal/pkg/reveal"
)

// imageExts are the file extensions offered for image arguments.
var imageExts = []string{"png", "jpg", "jpeg", "gif", "webp", "bmp", "tif", "tiff"}

// completeImageArg completes the single image argument with image files.
// URLs are typed by hand.
func completeImageArg(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return imageExts, cobra.ShellCompDirectiveFilterFileExt
}

// completeChoices offers a fixed list for a flag value.
func completeChoices(choices []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return choices, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerChoiceCompletions wires value completion for the enum flags that
// exist on cmd.
func registerChoiceCompletions(cmd *cobra.Command) {
	choices := map[string][]string{
		"theme":     render.Themes,
		"fit":       render.Fits,
		"direction": reveal.Directions,
		"initial":   pipeline.Initials,
	}
	switch cmd.Name() {
	case "render":
		choices["format"] = pipeline.ValidFormats
	case "phases":
		choices["format"] = diagram.Formats
	}
	for name, list := range choices {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, completeChoices(list))
		}
	}
}

// completionCommand prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for your shell. Image arguments complete to image
files; --theme, --fit, --direction, --initial and --format complete to their
allowed values.

  bash:        source <(slicereveal completion bash)
  zsh:         slicereveal completion zsh > "${fpath[1]}/_slicereveal"
  fish:        slicereveal completion fish | source
  powershell:  slicereveal completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, root := cmd.OutOrStdout(), cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
