package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oneimage/oneimage/internal/imaging"
	"github.com/oneimage/oneimage/internal/validate"
)

var (
	infoOutput string
	infoFormat string
	infoPretty bool
)

var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Show image metadata",
	Long: `Show metadata for an image: format, dimensions, file size and
aspect ratio. Output is JSON by default; use --format text for a
human-readable summary.

Examples:
  oneimage info photo.jpg
  oneimage info photo.jpg --format text
  oneimage info photo.jpg -o photo.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoOutput, "output", "o", "", "output file path (default: stdout)")
	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "json", "output format (json, text)")
	infoCmd.Flags().BoolVar(&infoPretty, "pretty", true, "indent JSON output")

	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	inputPath, err := validate.ImagePath(args[0], true)
	if err != nil {
		return err
	}

	meta, err := imaging.Probe(inputPath)
	if err != nil {
		return validate.Errorf("error reading image info: %v", err)
	}

	output, err := formatMetadata(meta, infoFormat)
	if err != nil {
		return err
	}

	if infoOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}
	if err := os.WriteFile(infoOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote image info to %s\n", infoOutput)
	return nil
}

func formatMetadata(meta imaging.Metadata, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if infoPretty {
			data, err = json.MarshalIndent(meta, "", "  ")
		} else {
			data, err = json.Marshal(meta)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatMetadataText(meta), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatMetadataText(meta imaging.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path:         %s\n", meta.Path)
	fmt.Fprintf(&b, "Format:       %s\n", meta.Format)
	fmt.Fprintf(&b, "Dimensions:   %dx%d\n", meta.Width, meta.Height)
	fmt.Fprintf(&b, "Size:         %s\n", formatBytes(meta.SizeBytes))
	fmt.Fprintf(&b, "Aspect ratio: %.2f", meta.AspectRatio)
	return b.String()
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMG"[exp])
}
