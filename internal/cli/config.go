package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/pipeline"
)

// ms converts d to whole milliseconds.
func ms(d time.Duration) int {
	return int(d / time.Millisecond)
}

// resolveConfigPath returns the config file to read and whether the user
// named it explicitly.
func (c *CLI) resolveConfigPath() (string, bool, error) {
	if c.configPath != "" {
		return c.configPath, true, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, configFile), false, nil
}

// loadConfig decodes the TOML config file into options. A missing default
// file yields zero options; a missing explicit file is an error.
func loadConfig(path string, explicit bool, logger *log.Logger) (pipeline.Options, error) {
	var opts pipeline.Options
	md, err := toml.DecodeFile(path, &opts)
	if stderrors.Is(err, fs.ErrNotExist) && !explicit {
		return pipeline.Options{}, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return opts, errors.Wrap(errors.ErrCodeFileNotFound, err, "config not found: %s", path)
	}
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.Warn("unknown config keys", "file", path, "keys", strings.Join(keys, ", "))
	}
	logger.Debug("loaded config", "file", path)
	return opts, nil
}

// options merges the config file with the flags the user set.
func (c *CLI) options(cmd *cobra.Command, flags *optionFlags) (pipeline.Options, error) {
	path, explicit, err := c.resolveConfigPath()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts, err := loadConfig(path, explicit, c.Logger)
	if err != nil {
		return opts, err
	}
	flags.apply(cmd, &opts)
	opts.Logger = c.Logger
	return opts, nil
}

// writeConfig encodes opts as TOML.
func writeConfig(w io.Writer, opts pipeline.Options) error {
	return toml.NewEncoder(w).Encode(opts)
}

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := c.resolveConfigPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}

			var opts pipeline.Options
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config dir")
			}
			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
			}
			if err := writeConfig(f, opts); err != nil {
				f.Close()
				return fmt.Errorf("write config: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, explicit, err := c.resolveConfigPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			opts, err := loadConfig(path, explicit, c.Logger)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), opts)
		},
	}
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := c.resolveConfigPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
