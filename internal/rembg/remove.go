package rembg

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/oneimage/oneimage/internal/logging"
	"github.com/oneimage/oneimage/internal/validate"
)

// Options control background removal.
type Options struct {
	// AlphaMatting enables threshold-based edge cleanup of the saliency
	// mask.
	AlphaMatting bool
	// ForegroundThreshold is the mask value (0-255) at or above which a
	// pixel is considered certain foreground.
	ForegroundThreshold int
	// BackgroundThreshold is the mask value (0-255) at or below which a
	// pixel is considered certain background.
	BackgroundThreshold int
	// ErodeSize shrinks the certain-foreground region by this many
	// pixels before blending edges.
	ErodeSize int
}

// DefaultOptions mirror the conventional u2net matting parameters.
func DefaultOptions() Options {
	return Options{
		AlphaMatting:        false,
		ForegroundThreshold: 240,
		BackgroundThreshold: 10,
		ErodeSize:           10,
	}
}

// Remove runs the named model on img and returns a copy with the
// background turned transparent.
func (r *Registry) Remove(img image.Image, modelName string, opts Options) (image.Image, error) {
	if opts.AlphaMatting {
		if err := validate.MattingThreshold("foreground", opts.ForegroundThreshold); err != nil {
			return nil, err
		}
		if err := validate.MattingThreshold("background", opts.BackgroundThreshold); err != nil {
			return nil, err
		}
		if err := validate.ErodeSize(opts.ErodeSize); err != nil {
			return nil, err
		}
	}

	s, err := r.Session(modelName)
	if err != nil {
		return nil, err
	}

	logging.L().Info("removing background",
		zap.String("model", modelName), zap.Bool("alpha_matting", opts.AlphaMatting))

	mask, err := s.predict(img)
	if err != nil {
		return nil, err
	}

	normalizeMask(mask)
	if opts.AlphaMatting {
		refineMask(mask, s.model.InputSize, opts)
	}

	bounds := img.Bounds()
	scaled := resize.Resize(
		uint(bounds.Dx()), uint(bounds.Dy()),
		maskToImage(mask, s.model.InputSize),
		resize.Lanczos3,
	)

	return applyAlpha(img, scaled), nil
}

// normalizeMask rescales mask values to [0,1] in place.
func normalizeMask(mask []float32) {
	if len(mask) == 0 {
		return
	}

	min, max := mask[0], mask[0]
	for _, v := range mask {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	span := max - min
	if span == 0 {
		for i := range mask {
			mask[i] = 0
		}
		return
	}

	for i := range mask {
		mask[i] = (mask[i] - min) / span
	}
}

// refineMask applies threshold-based edge cleanup: values at or above the
// foreground threshold become opaque, values at or below the background
// threshold become transparent, and the certain-foreground region is
// eroded to pull the edge inward.
func refineMask(mask []float32, size int, opts Options) {
	fg := float32(opts.ForegroundThreshold) / 255.0
	bg := float32(opts.BackgroundThreshold) / 255.0

	for i, v := range mask {
		switch {
		case v >= fg:
			mask[i] = 1
		case v <= bg:
			mask[i] = 0
		}
	}

	if opts.ErodeSize > 0 {
		erode(mask, size, opts.ErodeSize/2)
	}
}

// erode replaces each mask value with the minimum in a square window of
// the given radius.
func erode(mask []float32, size, radius int) {
	if radius <= 0 {
		return
	}

	src := make([]float32, len(mask))
	copy(src, mask)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			min := src[y*size+x]
			for dy := -radius; dy <= radius; dy++ {
				yy := y + dy
				if yy < 0 || yy >= size {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					xx := x + dx
					if xx < 0 || xx >= size {
						continue
					}
					if v := src[yy*size+xx]; v < min {
						min = v
					}
				}
			}
			mask[y*size+x] = min
		}
	}
}

// maskToImage converts a normalized mask into a grayscale image.
func maskToImage(mask []float32, size int) *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, size, size))
	for i, v := range mask {
		gray.Pix[i] = uint8(v * 255)
	}
	return gray
}

// applyAlpha copies img and sets each pixel's alpha from the mask image,
// which must have the same dimensions.
func applyAlpha(img image.Image, mask image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			m, _, _, _ := mask.At(x, y).RGBA()
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: uint8(m >> 8),
			})
		}
	}

	return out
}
