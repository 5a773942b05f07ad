package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultQuality != 85 {
		t.Errorf("expected default quality 85, got %d", cfg.DefaultQuality)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if cfg.RemoveBG.DefaultModel != "u2net" {
		t.Errorf("expected default model 'u2net', got %s", cfg.RemoveBG.DefaultModel)
	}
}

func TestSupportedFormats(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".jpg", true},
		{".jpeg", true},
		{".png", true},
		{".webp", true},
		{".JPG", true},
		{".Png", true},
		{".WEBP", true},
		{".gif", false},
		{".bmp", false},
		{".tiff", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsSupportedFormat(tc.ext); got != tc.expected {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", tc.ext, got, tc.expected)
		}
	}
}

func TestLossyFormats(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".jpg", true},
		{".jpeg", true},
		{".webp", true},
		{".JPEG", true},
		{".png", false},
		{".PNG", false},
	}

	for _, tc := range tests {
		if got := IsLossyFormat(tc.ext); got != tc.expected {
			t.Errorf("IsLossyFormat(%q) = %v, want %v", tc.ext, got, tc.expected)
		}
	}
}

func TestSupportedFormatList(t *testing.T) {
	list := SupportedFormatList()

	want := []string{"jpeg", "jpg", "png", "webp"}
	if len(list) != len(want) {
		t.Fatalf("expected %d formats, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i] != name {
			t.Errorf("expected format[%d] = %q, got %q", i, name, list[i])
		}
	}

	// No leading dots in the message form
	joined := strings.Join(list, ", ")
	if strings.Contains(joined, ".") {
		t.Errorf("format list should not contain dots: %s", joined)
	}
}

func TestLoader_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg := DefaultConfig()
	cfg.DefaultQuality = 70
	cfg.RemoveBG.DefaultModel = "u2netp"

	err := loader.Save(cfg)
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after save")
	}

	loaded, err := loader.LoadRaw()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.DefaultQuality != 70 {
		t.Errorf("expected default quality 70, got %d", loaded.DefaultQuality)
	}
	if loaded.RemoveBG.DefaultModel != "u2netp" {
		t.Errorf("expected default model 'u2netp', got %s", loaded.RemoveBG.DefaultModel)
	}
}

func TestLoader_LoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent", "config.yaml")

	loader := NewLoaderWithPath(configPath)

	// Should return default config when file doesn't exist
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}

	if cfg.DefaultQuality != DefaultQuality {
		t.Errorf("expected default quality %d, got %d", DefaultQuality, cfg.DefaultQuality)
	}
}

func TestLoader_ExpandEnvVars(t *testing.T) {
	os.Setenv("TEST_MODEL_DIR", "/opt/models")
	defer os.Unsetenv("TEST_MODEL_DIR")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `default_quality: 85
removebg:
  model_dir: ${TEST_MODEL_DIR}
  default_model: u2net
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	loader := NewLoaderWithPath(configPath)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.RemoveBG.ModelDir != "/opt/models" {
		t.Errorf("expected model dir '/opt/models', got %s", cfg.RemoveBG.ModelDir)
	}
	if cfg.ModelDir() != "/opt/models" {
		t.Errorf("expected ModelDir() '/opt/models', got %s", cfg.ModelDir())
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if v := GetEnvOrDefault("TEST_VAR", "default"); v != "test-value" {
		t.Errorf("expected 'test-value', got %s", v)
	}

	if v := GetEnvOrDefault("NONEXISTENT_VAR", "default"); v != "default" {
		t.Errorf("expected 'default', got %s", v)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"1", true},
		{"yes", true},
		{"YES", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"invalid", false},
	}

	for _, tc := range tests {
		os.Setenv("TEST_BOOL", tc.value)
		got := GetEnvBool("TEST_BOOL")
		if got != tc.expected {
			t.Errorf("GetEnvBool(%q): expected %v, got %v", tc.value, tc.expected, got)
		}
	}
	os.Unsetenv("TEST_BOOL")
}

func TestNewLoader(t *testing.T) {
	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}

	path := loader.ConfigPath()
	if path == "" {
		t.Error("expected non-empty config path")
	}

	if filepath.Base(path) != ConfigFileName {
		t.Errorf("expected config file name %s, got %s", ConfigFileName, filepath.Base(path))
	}
}

func TestLoader_Init(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	err := loader.Init()
	if err != nil {
		t.Fatalf("failed to init config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after init")
	}

	// Init again should fail
	err = loader.Init()
	if err == nil {
		t.Error("expected error when initializing existing config")
	}
}

func TestLoader_LoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := "{{{{invalid yaml"
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	loader := NewLoaderWithPath(configPath)
	_, err := loader.Load()
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestConfigDirFallbacks(t *testing.T) {
	cfg := DefaultConfig()

	if dir := cfg.LogDir(); !strings.Contains(dir, ConfigDirName) && dir != "logs" {
		t.Errorf("unexpected log dir: %s", dir)
	}
	if dir := cfg.ModelDir(); !strings.Contains(dir, ConfigDirName) && dir != "models" {
		t.Errorf("unexpected model dir: %s", dir)
	}

	cfg.Logging.Dir = "/var/log/oneimage"
	if dir := cfg.LogDir(); dir != "/var/log/oneimage" {
		t.Errorf("expected explicit log dir to win, got %s", dir)
	}
}
