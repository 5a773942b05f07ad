package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oneimage/oneimage/internal/imaging"
)

var (
	watermarkText     string
	watermarkPosition string
	watermarkOpacity  int
	watermarkFontSize int
	watermarkColor    string
	watermarkQuality  string
)

var watermarkCmd = &cobra.Command{
	Use:   "watermark <input> <output>",
	Short: "Add a text watermark to an image",
	Long: `Add a text watermark to an image.

Position is one of top-left, top-right, bottom-left, bottom-right
or center. Color accepts a named color (white, black, red, green,
blue, yellow, gray) or a hex value like #ff8800.

Examples:
  oneimage watermark photo.jpg marked.jpg --text "© 2026 Example"
  oneimage watermark photo.jpg marked.jpg --text DRAFT --position center --opacity 30`,
	Args: cobra.ExactArgs(2),
	RunE: runWatermark,
}

func init() {
	watermarkCmd.Flags().StringVarP(&watermarkText, "text", "t", "", "watermark text (required)")
	watermarkCmd.Flags().StringVar(&watermarkPosition, "position", "bottom-right",
		"watermark position")
	watermarkCmd.Flags().IntVar(&watermarkOpacity, "opacity", 50, "watermark opacity (0-100)")
	watermarkCmd.Flags().IntVar(&watermarkFontSize, "font-size", 36, "font size in points")
	watermarkCmd.Flags().StringVar(&watermarkColor, "font-color", "white", "watermark color")
	watermarkCmd.Flags().StringVarP(&watermarkQuality, "quality", "q", "",
		"output quality for lossy formats (1-100)")
	_ = watermarkCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(watermarkCmd)
}

func runWatermark(cmd *cobra.Command, args []string) error {
	opts := imaging.WatermarkOptions{
		Text:     watermarkText,
		Position: watermarkPosition,
		Opacity:  watermarkOpacity,
		FontSize: watermarkFontSize,
		Color:    watermarkColor,
		Quality:  watermarkQuality,
	}
	if err := newProcessor().Watermark(args[0], args[1], opts); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watermarked %s -> %s\n", args[0], args[1])
	return nil
}
