// Package validate rejects bad paths and parameters before any image I/O
// is attempted. All failures are reported as a single error kind with a
// message naming the offending value; unexpected OS errors encountered
// while checking are wrapped into the same kind rather than propagated
// raw.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/oneimage/oneimage/internal/config"
	"github.com/oneimage/oneimage/internal/logging"
)

// Error is the validation error kind. Every user-facing input failure is
// one of these.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

// Errorf builds a validation error with a formatted message.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a validation error.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Quality validates a quality flag value. The empty string means the
// quality was not given and is reported via ok=false. Only integer
// literals are accepted: floats, booleans and anything else strconv
// rejects fail validation, as does any integer outside [1,100].
func Quality(value string) (quality int, ok bool, err error) {
	if value == "" {
		return 0, false, nil
	}

	q, convErr := strconv.Atoi(strings.TrimSpace(value))
	if convErr != nil {
		return 0, false, Errorf("quality must be an integer between %d and %d, got %s",
			config.MinQuality, config.MaxQuality, value)
	}

	if q < config.MinQuality || q > config.MaxQuality {
		return 0, false, Errorf("quality must be between %d and %d, got %d",
			config.MinQuality, config.MaxQuality, q)
	}

	return q, true, nil
}

// ImagePath resolves path to an absolute form and checks it can serve as
// an input (shouldExist=true) or output (shouldExist=false) image
// location. For outputs, missing parent directories are created.
func ImagePath(path string, shouldExist bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", Errorf("invalid path: %v", err)
	}
	logging.L().Debug("validating path",
		zap.String("path", abs), zap.Bool("should_exist", shouldExist))

	if shouldExist {
		if err := checkInput(abs); err != nil {
			return "", err
		}
	} else {
		if err := checkOutput(abs); err != nil {
			return "", err
		}
	}

	return abs, nil
}

func checkInput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Errorf("file does not exist: %s", path)
		}
		return Errorf("cannot access file: %s (%v)", path, err)
	}

	if fi.IsDir() {
		return Errorf("path is not a file: %s", path)
	}

	if fi.Mode().Perm()&0400 == 0 {
		return Errorf("file is not readable: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !config.IsSupportedFormat(ext) {
		return Errorf("unsupported input format '%s'. Supported formats: %s",
			strings.TrimPrefix(ext, "."), strings.Join(config.SupportedFormatList(), ", "))
	}

	return nil
}

func checkOutput(path string) error {
	parent := filepath.Dir(path)

	fi, err := os.Stat(parent)
	switch {
	case err != nil && os.IsNotExist(err):
		if mkErr := os.MkdirAll(parent, 0755); mkErr != nil {
			return Errorf("cannot create output directory: %v", mkErr)
		}
		logging.L().Debug("created output directory", zap.String("dir", parent))
	case err != nil:
		return Errorf("cannot check directory permissions: %s (%v)", parent, err)
	default:
		if fi.Mode().Perm()&0200 == 0 {
			return Errorf("output directory is not writable: %s", parent)
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !config.IsSupportedFormat(ext) {
		return Errorf("unsupported output format '%s'. Supported formats: %s",
			strings.TrimPrefix(ext, "."), strings.Join(config.SupportedFormatList(), ", "))
	}

	return nil
}

// Dimensions validates a resize request. Zero means the dimension was not
// given; at least one must be present and any given dimension must be
// strictly positive.
func Dimensions(width, height int) error {
	if width == 0 && height == 0 {
		return Errorf("at least one of width or height must be specified")
	}
	if width < 0 {
		return Errorf("width must be positive, got %d", width)
	}
	if height < 0 {
		return Errorf("height must be positive, got %d", height)
	}
	return nil
}

// Opacity validates a watermark opacity percentage.
func Opacity(opacity int) error {
	if opacity < 0 || opacity > 100 {
		return Errorf("opacity must be between 0 and 100, got %d", opacity)
	}
	return nil
}

// FontSize validates a watermark font size.
func FontSize(size int) error {
	if size <= 0 {
		return Errorf("font size must be greater than 0, got %d", size)
	}
	return nil
}

// MattingThreshold validates an alpha matting threshold value. name is
// "foreground" or "background" and appears in the message.
func MattingThreshold(name string, value int) error {
	if value < 0 || value > 255 {
		return Errorf("alpha matting %s threshold must be between 0 and 255, got %d", name, value)
	}
	return nil
}

// ErodeSize validates the alpha matting erode size.
func ErodeSize(size int) error {
	if size < 0 {
		return Errorf("alpha matting erode size must be non-negative, got %d", size)
	}
	return nil
}
