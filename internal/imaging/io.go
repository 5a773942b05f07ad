package imaging

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	// Importing the webp package also registers its decoder with
	// image.Decode.
	"github.com/chai2010/webp"
)

// Metadata captures lightweight file and pixel information about an
// image.
type Metadata struct {
	Path        string  `json:"path"`
	Format      string  `json:"format"`
	SizeBytes   int64   `json:"size_bytes"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// Decode opens and decodes an image file, returning the image and the
// detected format name.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}
	return img, format, nil
}

// Probe returns metadata for an image file without decoding the full
// pixel data.
func Probe(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Metadata{}, fmt.Errorf("reading file info: %w", err)
	}

	// The format is taken from the magic bytes, not the extension, so a
	// mislabeled file is reported as what it actually contains.
	format, err := DetectFormatFromReader(f)
	if err != nil {
		return Metadata{}, err
	}
	if format == FormatUnknown {
		return Metadata{}, fmt.Errorf("unrecognized image data: %s", path)
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Metadata{}, fmt.Errorf("decoding image header: %w", err)
	}

	return Metadata{
		Path:        path,
		Format:      format.String(),
		SizeBytes:   fi.Size(),
		Width:       cfg.Width,
		Height:      cfg.Height,
		AspectRatio: float64(cfg.Width) / float64(cfg.Height),
	}, nil
}

// Encode writes img to path in the format implied by the extension.
// quality applies to lossy formats only and is ignored for PNG.
func Encode(img image.Image, path string, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	switch DetectFormat(path) {
	case FormatPNG:
		err = png.Encode(f, img)
	case FormatJPEG:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case FormatWebP:
		err = webp.Encode(f, img, &webp.Options{Quality: float32(quality)})
	default:
		return fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}

	if err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}
	return nil
}
