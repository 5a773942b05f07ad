package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertQuality string

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert an image to another format",
	Long: `Convert an image from one format to another.

The output format is taken from the output file extension.
Quality applies to lossy formats (jpg, jpeg, webp) and is ignored
for png.

Examples:
  oneimage convert photo.png photo.jpg
  oneimage convert photo.png photo.webp --quality 90`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertQuality, "quality", "q", "",
		"output quality for lossy formats (1-100)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := newProcessor().Convert(args[0], args[1], convertQuality); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", args[0], args[1])
	return nil
}
