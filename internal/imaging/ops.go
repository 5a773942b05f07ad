package imaging

import (
	"image/color"

	dimg "github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/oneimage/oneimage/internal/config"
	"github.com/oneimage/oneimage/internal/logging"
	"github.com/oneimage/oneimage/internal/validate"
)

// Processor performs the image operations behind the CLI commands. All
// parameters are validated before any file is touched; failures abort the
// operation with a validation error.
type Processor struct {
	filter         dimg.ResampleFilter
	defaultQuality int
}

// NewProcessor returns a Processor using Lanczos resampling and the given
// default quality for lossy outputs.
func NewProcessor(defaultQuality int) *Processor {
	if defaultQuality == 0 {
		defaultQuality = config.DefaultQuality
	}
	return &Processor{
		filter:         dimg.Lanczos,
		defaultQuality: defaultQuality,
	}
}

// resolveQuality validates the raw quality flag value and falls back to
// the processor default when absent.
func (p *Processor) resolveQuality(raw string) (int, error) {
	q, ok, err := validate.Quality(raw)
	if err != nil {
		return 0, err
	}
	if !ok {
		return p.defaultQuality, nil
	}
	return q, nil
}

// Convert re-encodes an image into the format implied by the output
// extension.
func (p *Processor) Convert(inputPath, outputPath, quality string) error {
	logging.L().Info("starting conversion",
		zap.String("input", inputPath), zap.String("output", outputPath))

	in, err := validate.ImagePath(inputPath, true)
	if err != nil {
		return err
	}
	out, err := validate.ImagePath(outputPath, false)
	if err != nil {
		return err
	}
	q, err := p.resolveQuality(quality)
	if err != nil {
		return err
	}

	img, format, err := Decode(in)
	if err != nil {
		return validate.Errorf("error during image conversion: %v", err)
	}
	logging.L().Debug("image decoded", zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))

	if err := Encode(img, out, q); err != nil {
		return validate.Errorf("error during image conversion: %v", err)
	}

	logging.L().Info("conversion complete", zap.String("output", out))
	return nil
}

// Resize scales an image to the requested dimensions, resolving missing
// dimensions with ResolveSize.
func (p *Processor) Resize(inputPath, outputPath string, width, height int, preserveAspect bool, quality string) error {
	logging.L().Info("starting resize",
		zap.String("input", inputPath), zap.String("output", outputPath),
		zap.Int("width", width), zap.Int("height", height),
		zap.Bool("preserve_aspect", preserveAspect))

	in, err := validate.ImagePath(inputPath, true)
	if err != nil {
		return err
	}
	out, err := validate.ImagePath(outputPath, false)
	if err != nil {
		return err
	}
	q, err := p.resolveQuality(quality)
	if err != nil {
		return err
	}
	if err := validate.Dimensions(width, height); err != nil {
		return err
	}

	img, _, err := Decode(in)
	if err != nil {
		return validate.Errorf("error during image resize: %v", err)
	}

	origW := img.Bounds().Dx()
	origH := img.Bounds().Dy()
	newW, newH := ResolveSize(origW, origH, width, height, preserveAspect)
	logging.L().Debug("resolved dimensions",
		zap.Int("orig_width", origW), zap.Int("orig_height", origH),
		zap.Int("new_width", newW), zap.Int("new_height", newH))

	resized := dimg.Resize(img, newW, newH, p.filter)

	if err := Encode(resized, out, q); err != nil {
		return validate.Errorf("error during image resize: %v", err)
	}

	logging.L().Info("resize complete",
		zap.Int("width", newW), zap.Int("height", newH))
	return nil
}

// Rotate rotates an image counter-clockwise by angle degrees. With expand
// the canvas grows to fit the rotated image; otherwise the result is
// cropped back to the original size around the center.
func (p *Processor) Rotate(inputPath, outputPath string, angle float64, expand bool, quality string) error {
	logging.L().Info("starting rotation",
		zap.String("input", inputPath), zap.String("output", outputPath),
		zap.Float64("angle", angle), zap.Bool("expand", expand))

	in, err := validate.ImagePath(inputPath, true)
	if err != nil {
		return err
	}
	out, err := validate.ImagePath(outputPath, false)
	if err != nil {
		return err
	}
	q, err := p.resolveQuality(quality)
	if err != nil {
		return err
	}

	img, _, err := Decode(in)
	if err != nil {
		return validate.Errorf("error during image rotation: %v", err)
	}

	origW := img.Bounds().Dx()
	origH := img.Bounds().Dy()

	rotated := dimg.Rotate(img, angle, color.NRGBA{})
	if !expand {
		rotated = dimg.CropCenter(rotated, origW, origH)
	}

	if err := Encode(rotated, out, q); err != nil {
		return validate.Errorf("error during image rotation: %v", err)
	}

	logging.L().Info("rotation complete", zap.String("output", out))
	return nil
}
