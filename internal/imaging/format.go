// Package imaging implements the image operations behind the CLI
// commands: decode/encode, resize geometry, rotation and watermarking.
// Pixel work is delegated to the imaging libraries; this package owns the
// parameter plumbing around them.
package imaging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format represents an image file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
	FormatWebP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// DetectFormat detects the image format from the file path extension.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".png":
		return FormatPNG
	case ".webp":
		return FormatWebP
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by reading magic bytes.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 12)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}

	// JPEG: FF D8 FF
	if buf[0] == 0xFF && buf[1] == 0xD8 && buf[2] == 0xFF {
		return FormatJPEG, nil
	}

	// PNG: 89 50 4E 47
	if buf[0] == 0x89 && buf[1] == 'P' && buf[2] == 'N' && buf[3] == 'G' {
		return FormatPNG, nil
	}

	// WebP: RIFF....WEBP
	if n >= 12 && string(buf[:4]) == "RIFF" && string(buf[8:12]) == "WEBP" {
		return FormatWebP, nil
	}

	return FormatUnknown, nil
}
