// Package logging configures the application logger. Log output always
// goes to a rotated file under the config directory; console output is
// opt-in via the --verbose flag.
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/oneimage/oneimage/internal/config"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// L returns the process logger. Before Init it is a no-op logger, so
// packages can log unconditionally.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init builds the logger from the configuration. When console is true,
// log entries are also written to stderr.
func Init(cfg *config.Config, console bool, level string) error {
	if level == "" {
		level = cfg.Logging.Level
	}
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	logDir := cfg.LogDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "oneimage.log"),
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileSink, lvl),
	}

	if console {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr),
			lvl,
		))
	}

	mu.Lock()
	logger = zap.New(zapcore.NewTee(cores...))
	mu.Unlock()
	return nil
}

// Sync flushes buffered log entries. Safe to call on exit.
func Sync() {
	_ = L().Sync()
}
