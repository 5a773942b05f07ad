package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oneimage/oneimage/internal/rembg"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List background-removal models",
	Long: `List the segmentation models the removebg command can use.

Models are ONNX files looked up in the configured model directory.
A model shows as available once its .onnx file is placed there.

Examples:
  oneimage models
  oneimage removebg photo.jpg cutout.png --model u2netp`,
	Run: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) {
	modelDir := appConfig().ModelDir()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "NAME\tFILE\tINPUT\tSTATUS\tDESCRIPTION")
	fmt.Fprintln(w, "----\t----\t-----\t------\t-----------")

	for _, m := range rembg.Models() {
		status := checkModelStatus(m, modelDir)
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%s\n",
			m.Name, m.File, m.InputSize, m.InputSize, status, m.Description)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nModel directory: %s\n", modelDir)
}

func checkModelStatus(m rembg.Model, modelDir string) string {
	if _, err := os.Stat(filepath.Join(modelDir, m.File)); err == nil {
		return "✓ available"
	}
	return "✗ missing"
}
