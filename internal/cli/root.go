// Package cli wires the oneimage commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oneimage/oneimage/internal/config"
	"github.com/oneimage/oneimage/internal/imaging"
	"github.com/oneimage/oneimage/internal/logging"
)

var version = "dev"

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var (
	rootVerbose  bool
	rootLogLevel string

	// cfg is loaded once per invocation in the root PersistentPreRunE.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "oneimage",
	Short: "Convert, resize, rotate, watermark and cut out images",
	Long: `oneimage is a command-line tool for everyday raster-image work:
format conversion, resizing, rotation, text watermarking and
AI-based background removal.

Supported formats: jpg, jpeg, png, webp.

Environment variables:
  ONEIMAGE_LOG_LEVEL   log level when --log-level is not given
  ONEIMAGE_VERBOSE     same as --verbose when set to true/1/yes
  ONEIMAGE_MODEL_DIR   overrides the background-removal model directory

Examples:
  oneimage convert photo.png photo.jpg
  oneimage resize photo.jpg small.jpg --width 640
  oneimage rotate photo.jpg turned.jpg --angle 90
  oneimage watermark photo.jpg marked.jpg --text "© 2026"
  oneimage removebg photo.jpg cutout.png`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loader, err := config.NewLoader()
		if err != nil {
			cfg = config.DefaultConfig()
		} else {
			cfg, err = loader.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}

		// Environment overrides beat the config file but not flags.
		if dir := config.GetEnvOrDefault("ONEIMAGE_MODEL_DIR", ""); dir != "" {
			cfg.RemoveBG.ModelDir = dir
		}
		level := rootLogLevel
		if level == "" {
			level = config.GetEnvOrDefault("ONEIMAGE_LOG_LEVEL", "")
		}
		console := rootVerbose || config.GetEnvBool("ONEIMAGE_VERBOSE")

		if err := logging.Init(cfg, console, level); err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false,
		"log to the console in addition to the log file")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "oneimage %s\n", version)
	},
}

// appConfig returns the loaded configuration, falling back to defaults
// when the root hooks have not run (tests).
func appConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// newProcessor builds the image processor from the loaded configuration.
func newProcessor() *imaging.Processor {
	return imaging.NewProcessor(appConfig().DefaultQuality)
}

// Execute runs the root command. Any failure maps to exit code 1.
func Execute() int {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		logging.L().Error("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
