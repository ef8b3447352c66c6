package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/pkg/cache"
	"github.com/matzehuels/slicereveal/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the prepared-layer cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached image layers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cacheURL != "" {
				return c.clearShared(cmd)
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := fc.Clear(cmd.Context())
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// clearShared clears the Redis or MongoDB cache named by --cache-url.
func (c *CLI) clearShared(cmd *cobra.Command) error {
	cc, err := openCacheURL(cmd.Context(), c.cacheURL)
	if err != nil {
		return err
	}
	defer cc.Close()

	clearer, ok := cc.(interface {
		Clear(context.Context) (int, error)
	})
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "cache at %s cannot be cleared", c.cacheURL)
	}
	count, err := clearer.Clear(cmd.Context())
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Cleared %d cached entries", count)
	printDetail("Server: %s", c.cacheURL)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cacheURL != "" {
				fmt.Fprintln(cmd.OutOrStdout(), c.cacheURL)
				return nil
			}
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
