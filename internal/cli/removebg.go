package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oneimage/oneimage/internal/config"
	"github.com/oneimage/oneimage/internal/imaging"
	"github.com/oneimage/oneimage/internal/rembg"
	"github.com/oneimage/oneimage/internal/validate"
)

var (
	removebgModel       string
	removebgMatting     bool
	removebgFgThreshold int
	removebgBgThreshold int
	removebgErodeSize   int
	removebgQuality     string
)

var removebgCmd = &cobra.Command{
	Use:   "removebg <input> <output>",
	Short: "Remove the background from an image",
	Long: `Remove the background from an image using a U²-Net ONNX model.

The output gets a transparent background, so png or webp output is
recommended. Models are loaded from the configured model directory;
run "oneimage models" to see which models are available.

Alpha matting refines the edge between foreground and background:
pixels above the foreground threshold become fully opaque, pixels
below the background threshold fully transparent, and the mask edge
is eroded by the given size.

Examples:
  oneimage removebg photo.jpg cutout.png
  oneimage removebg photo.jpg cutout.png --model u2netp
  oneimage removebg photo.jpg cutout.png --alpha-matting --alpha-matting-erode-size 6`,
	Args: cobra.ExactArgs(2),
	RunE: runRemoveBG,
}

func init() {
	removebgCmd.Flags().StringVarP(&removebgModel, "model", "m", "",
		"segmentation model (u2net, u2netp, u2net_human_seg)")
	removebgCmd.Flags().BoolVar(&removebgMatting, "alpha-matting", false,
		"refine mask edges with thresholding and erosion")
	removebgCmd.Flags().IntVar(&removebgFgThreshold, "alpha-matting-foreground-threshold", 240,
		"mask value treated as definite foreground (0-255)")
	removebgCmd.Flags().IntVar(&removebgBgThreshold, "alpha-matting-background-threshold", 10,
		"mask value treated as definite background (0-255)")
	removebgCmd.Flags().IntVar(&removebgErodeSize, "alpha-matting-erode-size", 10,
		"erosion size for alpha matting")
	removebgCmd.Flags().StringVarP(&removebgQuality, "quality", "q", "",
		"output quality for lossy formats (1-100)")

	rootCmd.AddCommand(removebgCmd)
}

func runRemoveBG(cmd *cobra.Command, args []string) error {
	inputPath, err := validate.ImagePath(args[0], true)
	if err != nil {
		return err
	}
	outputPath, err := validate.ImagePath(args[1], false)
	if err != nil {
		return err
	}

	quality, ok, err := validate.Quality(removebgQuality)
	if err != nil {
		return err
	}
	if !ok {
		quality = config.DefaultRemoveBGQuality
	}

	appCfg := appConfig()
	modelName := removebgModel
	if modelName == "" {
		modelName = appCfg.RemoveBG.DefaultModel
	}
	if modelName == "" {
		modelName = config.DefaultConfig().RemoveBG.DefaultModel
	}

	img, _, err := imaging.Decode(inputPath)
	if err != nil {
		return validate.Errorf("error during background removal: %v", err)
	}

	registry := rembg.NewRegistry(appCfg.ModelDir(), appCfg.RemoveBG.RuntimeLib)
	defer registry.Close()

	result, err := registry.Remove(img, modelName, rembg.Options{
		AlphaMatting:        removebgMatting,
		ForegroundThreshold: removebgFgThreshold,
		BackgroundThreshold: removebgBgThreshold,
		ErodeSize:           removebgErodeSize,
	})
	if err != nil {
		return err
	}

	if err := imaging.Encode(result, outputPath, quality); err != nil {
		return validate.Errorf("error during background removal: %v", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed background: %s -> %s\n", args[0], args[1])
	return nil
}
