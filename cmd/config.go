package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"prq.dev/prq/pkg/bootstrap"
	prqerrors "prq.dev/prq/pkg/errors"
)

var configInitForce bool

// configCmd groups configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage prq configuration",
	Long: `Manage the prq configuration file.

Examples:
  prq config init      # Write a default config file
  prq config show      # Show the effective configuration`,
}

// configInitCmd writes a default configuration file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default configuration file to $HOME/.config/prq/config.toml.

Refuses to overwrite an existing file unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit()
	},
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigInit() error {
	dir, err := bootstrap.ConfigDir()
	if err != nil {
		return prqerrors.Wrap(err, "failed to determine config directory")
	}
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return prqerrors.Newf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return prqerrors.Wrapf(err, "failed to create %s", dir)
	}

	cfg, err := loadConfig()
	if err != nil {
		return prqerrors.Wrap(err, "failed to load configuration")
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return prqerrors.Wrap(err, "failed to encode configuration")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return prqerrors.Wrapf(err, "failed to write %s", path)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow() error {
	cfg, err := loadConfig()
	if err != nil {
		return prqerrors.Wrap(err, "failed to load configuration")
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return prqerrors.Wrap(err, "failed to encode configuration")
	}
	fmt.Print(string(data))
	return nil
}
