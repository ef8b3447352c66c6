// Command slicereveal animates an image splitting into slices and
// reassembling.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/internal/cli"
	"github.com/matzehuels/slicereveal/pkg/errors"
)

// debugEnv enables debug logging like --verbose.
const debugEnv = "SLICEREVEAL_DEBUG"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	switch {
	case err == nil:
		return
	case ctx.Err() != nil:
		// Interrupted: the shell convention for SIGINT.
		os.Exit(130)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(errors.ExitCode(err))
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	verbose := root.PersistentFlags().BoolP("verbose", "v", os.Getenv(debugEnv) != "", "enable debug logging (or set "+debugEnv+")")

	preRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return preRun(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
