package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resizeWidth   int
	resizeHeight  int
	resizeStretch bool
	resizeQuality string
)

var resizeCmd = &cobra.Command{
	Use:   "resize <input> <output>",
	Short: "Resize an image",
	Long: `Resize an image to the given dimensions.

At least one of --width and --height is required. When only one is
given, the other is derived from the original aspect ratio. When both
are given, the image is fitted within the box; pass --no-aspect-ratio
to stretch to the exact dimensions instead.

Examples:
  oneimage resize photo.jpg small.jpg --width 640
  oneimage resize photo.jpg thumb.jpg --width 200 --height 200
  oneimage resize photo.jpg banner.jpg --width 900 --height 300 --no-aspect-ratio`,
	Args: cobra.ExactArgs(2),
	RunE: runResize,
}

func init() {
	resizeCmd.Flags().IntVar(&resizeWidth, "width", 0, "target width in pixels")
	resizeCmd.Flags().IntVar(&resizeHeight, "height", 0, "target height in pixels")
	resizeCmd.Flags().BoolVar(&resizeStretch, "no-aspect-ratio", false,
		"stretch to the exact dimensions instead of fitting")
	resizeCmd.Flags().StringVarP(&resizeQuality, "quality", "q", "",
		"output quality for lossy formats (1-100)")

	rootCmd.AddCommand(resizeCmd)
}

func runResize(cmd *cobra.Command, args []string) error {
	err := newProcessor().Resize(args[0], args[1],
		resizeWidth, resizeHeight, !resizeStretch, resizeQuality)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Resized %s -> %s\n", args[0], args[1])
	return nil
}
