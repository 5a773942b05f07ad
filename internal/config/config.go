// Package config manages application configuration.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Quality bounds for lossy output formats.
const (
	MinQuality = 1
	MaxQuality = 100

	// DefaultQuality is used when no quality is given for a lossy format.
	DefaultQuality = 85

	// DefaultRemoveBGQuality is the save quality used by the removebg
	// command when none is given.
	DefaultRemoveBGQuality = 95
)

// supportedFormats is the closed set of recognized file extensions,
// lowercase with the leading dot. Anything outside this set is rejected
// before any image I/O happens.
var supportedFormats = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// lossyFormats accept a quality parameter on encode.
var lossyFormats = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// IsSupportedFormat reports whether ext (with leading dot) is a recognized
// image format. Matching is case-insensitive.
func IsSupportedFormat(ext string) bool {
	return supportedFormats[strings.ToLower(ext)]
}

// IsLossyFormat reports whether ext takes a quality setting.
func IsLossyFormat(ext string) bool {
	return lossyFormats[strings.ToLower(ext)]
}

// SupportedFormatList returns the supported extensions without their
// leading dots, sorted. Used to build validation error messages.
func SupportedFormatList() []string {
	names := make([]string, 0, len(supportedFormats))
	for ext := range supportedFormats {
		names = append(names, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(names)
	return names
}

// Config represents the application configuration.
type Config struct {
	DefaultQuality int            `yaml:"default_quality"`
	Logging        LoggingConfig  `yaml:"logging"`
	RemoveBG       RemoveBGConfig `yaml:"removebg"`
}

// LoggingConfig controls the file logger and its rotation.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir,omitempty"` // empty means ~/.oneimage/logs
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// RemoveBGConfig configures the background-removal models.
type RemoveBGConfig struct {
	ModelDir     string `yaml:"model_dir,omitempty"` // empty means ~/.oneimage/models
	DefaultModel string `yaml:"default_model"`
	RuntimeLib   string `yaml:"runtime_lib,omitempty"` // onnxruntime shared library override
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultQuality: DefaultQuality,
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 2,
			MaxAgeDays: 28,
			Compress:   true,
		},
		RemoveBG: RemoveBGConfig{
			DefaultModel: "u2net",
		},
	}
}

// LogDir returns the configured log directory, falling back to
// ~/.oneimage/logs.
func (c *Config) LogDir() string {
	if c.Logging.Dir != "" {
		return c.Logging.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "logs"
	}
	return filepath.Join(home, ConfigDirName, "logs")
}

// ModelDir returns the configured model directory, falling back to
// ~/.oneimage/models.
func (c *Config) ModelDir() string {
	if c.RemoveBG.ModelDir != "" {
		return c.RemoveBG.ModelDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "models"
	}
	return filepath.Join(home, ConfigDirName, "models")
}
