package imaging

import (
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	dimg "github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/oneimage/oneimage/internal/logging"
	"github.com/oneimage/oneimage/internal/validate"
)

// watermarkPadding is the distance in pixels between the text and the
// image edge.
const watermarkPadding = 20

// fontPaths are the system font locations tried in order before falling
// back to the built-in bitmap face.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/Library/Fonts/Arial.ttf",        // macOS
	"C:\\Windows\\Fonts\\arial.ttf",   // Windows
	"C:\\Windows\\Fonts\\segoeui.ttf", // Windows
}

// WatermarkOptions describes a text watermark.
type WatermarkOptions struct {
	Text     string
	Position string // top-left, top-right, bottom-left, bottom-right, center
	Opacity  int    // 0-100
	FontSize int
	Color    string
	Quality  string
}

// namedColors are the color names accepted for --font-color besides
// #rgb/#rrggbb hex values.
var namedColors = map[string]color.NRGBA{
	"white":   {255, 255, 255, 255},
	"black":   {0, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
}

// parseColor resolves a color name or hex literal.
func parseColor(s string) (color.NRGBA, bool) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, true
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 && strings.HasPrefix(s, "#") {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err == nil {
			return color.NRGBA{
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
				A: 255,
			}, true
		}
	}

	return color.NRGBA{}, false
}

// loadFace returns a font face for the given size, trying system fonts
// first and falling back to the built-in bitmap face.
func loadFace(size int) font.Face {
	for _, path := range fontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		ft, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			continue
		}
		logging.L().Debug("loaded watermark font", zap.String("path", path))
		return face
	}

	logging.L().Debug("no system font found, using built-in face")
	return basicfont.Face7x13
}

// watermarkOrigin computes the top-left corner of the text box for the
// requested position. Unknown positions fall back to bottom-right.
func watermarkOrigin(position string, imgW, imgH, textW, textH int) (int, int) {
	switch position {
	case "top-left":
		return watermarkPadding, watermarkPadding
	case "top-right":
		return imgW - textW - watermarkPadding, watermarkPadding
	case "bottom-left":
		return watermarkPadding, imgH - textH - watermarkPadding
	case "center":
		return (imgW - textW) / 2, (imgH - textH) / 2
	case "bottom-right":
		return imgW - textW - watermarkPadding, imgH - textH - watermarkPadding
	default:
		logging.L().Warn("invalid watermark position, using bottom-right",
			zap.String("position", position))
		return imgW - textW - watermarkPadding, imgH - textH - watermarkPadding
	}
}

// Watermark draws a text watermark onto an image and saves the result.
func (p *Processor) Watermark(inputPath, outputPath string, opts WatermarkOptions) error {
	logging.L().Info("adding watermark",
		zap.String("input", inputPath), zap.String("text", opts.Text))

	in, err := validate.ImagePath(inputPath, true)
	if err != nil {
		return err
	}
	out, err := validate.ImagePath(outputPath, false)
	if err != nil {
		return err
	}
	q, err := p.resolveQuality(opts.Quality)
	if err != nil {
		return err
	}
	if err := validate.Opacity(opts.Opacity); err != nil {
		return err
	}
	if err := validate.FontSize(opts.FontSize); err != nil {
		return err
	}
	if opts.Text == "" {
		return validate.Errorf("watermark text must not be empty")
	}

	img, _, err := Decode(in)
	if err != nil {
		return validate.Errorf("error during watermarking: %v", err)
	}

	c, ok := parseColor(opts.Color)
	if !ok {
		logging.L().Warn("invalid watermark color, using white",
			zap.String("color", opts.Color))
		c = namedColors["white"]
	}
	c.A = uint8(255 * opts.Opacity / 100)

	face := loadFace(opts.FontSize)
	watermarked := drawWatermark(img, opts.Text, opts.Position, face, c)

	if err := Encode(watermarked, out, q); err != nil {
		return validate.Errorf("error during watermarking: %v", err)
	}

	logging.L().Info("watermark added", zap.String("output", out))
	return nil
}

// drawWatermark renders text onto a copy of img with the given face and
// (already alpha-scaled) color.
func drawWatermark(img image.Image, text, position string, face font.Face, c color.NRGBA) *image.NRGBA {
	dst := dimg.Clone(img)

	bounds, _ := font.BoundString(face, text)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x, y := watermarkOrigin(position, dst.Bounds().Dx(), dst.Bounds().Dy(), textW, textH)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		// Dot is the baseline origin; shift down by the ascent so x,y is
		// the top-left of the text box.
		Dot: fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(text)

	return dst
}
