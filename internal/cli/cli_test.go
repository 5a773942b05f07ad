package cli

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oneimage/oneimage/internal/imaging"
	"github.com/oneimage/oneimage/internal/rembg"
)

func TestSetVersion(t *testing.T) {
	oldVersion := version
	defer func() { version = oldVersion }()

	SetVersion("1.2.3")
	if version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got '%s'", version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "oneimage" {
		t.Errorf("expected Use 'oneimage', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}
}

func TestVersionCommand(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("expected Use 'version', got '%s'", versionCmd.Use)
	}

	if versionCmd.Short == "" {
		t.Error("expected Short description to be set")
	}
}

func TestConvertCommandFlags(t *testing.T) {
	if convertCmd.Use != "convert <input> <output>" {
		t.Errorf("expected Use 'convert <input> <output>', got '%s'", convertCmd.Use)
	}

	if convertCmd.Flags().Lookup("quality") == nil {
		t.Error("expected flag 'quality' to exist")
	}
}

func TestResizeCommandFlags(t *testing.T) {
	if resizeCmd.Use != "resize <input> <output>" {
		t.Errorf("expected Use 'resize <input> <output>', got '%s'", resizeCmd.Use)
	}

	flags := []string{"width", "height", "no-aspect-ratio", "quality"}
	for _, flag := range flags {
		if resizeCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag '%s' to exist", flag)
		}
	}
}

func TestRotateCommandFlags(t *testing.T) {
	flags := []string{"angle", "no-expand", "quality"}
	for _, flag := range flags {
		if rotateCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag '%s' to exist", flag)
		}
	}

	angle := rotateCmd.Flags().Lookup("angle")
	if angle.DefValue != "90" {
		t.Errorf("expected default angle '90', got '%s'", angle.DefValue)
	}
}

func TestWatermarkCommandFlags(t *testing.T) {
	flags := []string{"text", "position", "opacity", "font-size", "font-color", "quality"}
	for _, flag := range flags {
		if watermarkCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag '%s' to exist", flag)
		}
	}

	position := watermarkCmd.Flags().Lookup("position")
	if position.DefValue != "bottom-right" {
		t.Errorf("expected default position 'bottom-right', got '%s'", position.DefValue)
	}
}

func TestRemoveBGCommandFlags(t *testing.T) {
	flags := []string{
		"model", "alpha-matting",
		"alpha-matting-foreground-threshold", "alpha-matting-background-threshold",
		"alpha-matting-erode-size", "quality",
	}
	for _, flag := range flags {
		if removebgCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag '%s' to exist", flag)
		}
	}
}

func TestInfoCommandFlags(t *testing.T) {
	flags := []string{"output", "format", "pretty"}
	for _, flag := range flags {
		if infoCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag '%s' to exist", flag)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	if configCmd.Use != "config" {
		t.Errorf("expected Use 'config', got '%s'", configCmd.Use)
	}

	subcommands := []string{"show", "init", "set", "path"}
	for _, name := range subcommands {
		found := false
		for _, cmd := range configCmd.Commands() {
			if cmd.Use == name || cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand '%s' to exist", name)
		}
	}
}

func TestCheckModelStatus(t *testing.T) {
	dir := t.TempDir()

	model, ok := rembg.Lookup("u2net")
	if !ok {
		t.Fatal("expected model 'u2net' to be known")
	}

	if status := checkModelStatus(model, dir); status != "✗ missing" {
		t.Errorf("expected '✗ missing', got '%s'", status)
	}

	if err := os.WriteFile(filepath.Join(dir, model.File), []byte("onnx"), 0644); err != nil {
		t.Fatal(err)
	}

	if status := checkModelStatus(model, dir); status != "✓ available" {
		t.Errorf("expected '✓ available', got '%s'", status)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			result := formatBytes(tc.input)
			if result != tc.expected {
				t.Errorf("formatBytes(%d) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestFormatMetadataText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 40, 20))); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	meta, err := imaging.Probe(path)
	if err != nil {
		t.Fatalf("unexpected probe error: %v", err)
	}

	text := formatMetadataText(meta)
	for _, want := range []string{"Format:", "Dimensions:", "40x20", "Aspect ratio: 2.00"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected text output to contain %q, got:\n%s", want, text)
		}
	}
}
