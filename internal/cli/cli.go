// Package cli implements the slicereveal command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/pkg/buildinfo"
	"github.com/matzehuels/slicereveal/pkg/cache"
	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "slicereveal"

	// configFile is the config file name inside the config directory.
	configFile = "config.toml"

	// cacheURLEnv overrides the default of --cache-url.
	cacheURLEnv = "SLICEREVEAL_CACHE_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means the default location.
	configPath string
	noCache    bool
	cacheURL   string
	logFormat  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// applyLogFormat switches the logger to the --log-format formatter.
func (c *CLI) applyLogFormat() error {
	f, err := parseLogFormat(c.logFormat)
	if err != nil {
		return err
	}
	c.Logger.SetFormatter(f)
	return nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Slicereveal animates an image splitting into slices and reassembling",
		Long:         `Slicereveal cuts an image into bands, scatters them as a pencil sketch and reassembles them in color, in a loop. Export the loop as a GIF or PNG frames, watch it in the terminal, serve it over HTTP or show it on a Linux framebuffer.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/slicereveal/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the layer cache")
	root.PersistentFlags().StringVar(&c.cacheURL, "cache-url", os.Getenv(cacheURLEnv), "redis:// or mongodb:// URL of a shared layer cache (default: file cache)")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", logFormatText, "log format: text, json or logfmt")
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		return c.applyLogFormat()
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.displayCommand())
	root.AddCommand(c.phasesCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "render", "play", "serve", "display":
			sub.ValidArgsFunction = completeImageArg
		}
		registerChoiceCompletions(sub)
	}

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache opens the layer cache selected by the flags: none, a shared
// Redis or MongoDB server, or the file cache.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	switch {
	case c.noCache:
		return cache.NewNullCache(), nil
	case c.cacheURL != "":
		return openCacheURL(ctx, c.cacheURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func openCacheURL(ctx context.Context, rawURL string) (cache.Cache, error) {
	var (
		cc  cache.Cache
		err error
	)
	switch {
	case strings.HasPrefix(rawURL, "mongodb://"), strings.HasPrefix(rawURL, "mongodb+srv://"):
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		cc, err = cache.NewMongoCache(ctx, rawURL)
	default:
		cc, err = cache.NewRedisCache(rawURL)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache url")
	}
	return cc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/slicereveal/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/slicereveal/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatGIF}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
