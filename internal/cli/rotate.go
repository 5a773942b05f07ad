package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	rotateAngle    float64
	rotateNoExpand bool
	rotateQuality  string
)

var rotateCmd = &cobra.Command{
	Use:   "rotate <input> <output>",
	Short: "Rotate an image",
	Long: `Rotate an image counter-clockwise by the given angle in degrees.

By default the canvas expands so the whole rotated image fits.
Pass --no-expand to keep the original canvas size and crop the
rotated image to it.

Examples:
  oneimage rotate photo.jpg turned.jpg
  oneimage rotate photo.jpg tilted.jpg --angle 45 --no-expand`,
	Args: cobra.ExactArgs(2),
	RunE: runRotate,
}

func init() {
	rotateCmd.Flags().Float64Var(&rotateAngle, "angle", 90, "rotation angle in degrees")
	rotateCmd.Flags().BoolVar(&rotateNoExpand, "no-expand", false,
		"keep the original canvas size, cropping the result")
	rotateCmd.Flags().StringVarP(&rotateQuality, "quality", "q", "",
		"output quality for lossy formats (1-100)")

	rootCmd.AddCommand(rotateCmd)
}

func runRotate(cmd *cobra.Command, args []string) error {
	err := newProcessor().Rotate(args[0], args[1],
		rotateAngle, !rotateNoExpand, rotateQuality)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rotated %s -> %s\n", args[0], args[1])
	return nil
}
