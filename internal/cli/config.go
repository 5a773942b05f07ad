package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oneimage/oneimage/internal/config"
	"github.com/oneimage/oneimage/internal/rembg"
	"github.com/oneimage/oneimage/internal/validate"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage the oneimage configuration.

Config file location: ~/.oneimage/config.yaml

Subcommands:
  show    print the current configuration
  init    create a default config file
  set     change a configuration value
  path    print the config file path`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	Long: `Print the configuration currently in effect.

Values of the form ${VAR} in the config file are expanded from the
environment. Defaults are shown when no config file exists.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Create a default config file at ~/.oneimage/config.yaml.

Fails if a config file already exists; pass --force to overwrite.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: `Change a configuration value.

Supported keys:
  default_quality         default output quality for lossy formats (1-100)
  logging.level           log level (debug, info, warn, error)
  removebg.default_model  default background-removal model

Examples:
  oneimage config set default_quality 90
  oneimage config set removebg.default_model u2netp`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := config.NewLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	loaded, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file: (using defaults)\n\n")
	}

	data, err := yaml.Marshal(loaded)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("config file already exists: %s\nuse --force to overwrite", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	loaded, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case "default_quality":
		quality, ok, err := validate.Quality(value)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("quality value is required")
		}
		loaded.DefaultQuality = quality

	case "logging.level":
		if _, err := zapcore.ParseLevel(value); err != nil {
			return fmt.Errorf("invalid log level: %s (supported: debug, info, warn, error)", value)
		}
		loaded.Logging.Level = value

	case "removebg.default_model":
		if _, ok := rembg.Lookup(value); !ok {
			return fmt.Errorf("invalid model: %s (supported: %s)",
				value, strings.Join(rembg.ModelNames(), ", "))
		}
		loaded.RemoveBG.DefaultModel = value

	default:
		return fmt.Errorf("unknown config key: %s\nsupported keys: default_quality, logging.level, removebg.default_model", key)
	}

	if err := loader.Save(loaded); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated config: %s = %s\n", key, value)
	return nil
}
