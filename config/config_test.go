package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.NumberFormat != "binary" {
		t.Errorf("Expected NumberFormat=binary, got %s", cfg.Output.NumberFormat)
	}
	if cfg.Output.ColorOutput {
		t.Error("Expected ColorOutput=false")
	}
	if cfg.Output.ListingWidth != 80 {
		t.Errorf("Expected ListingWidth=80, got %d", cfg.Output.ListingWidth)
	}
	if cfg.Diagnostics.Quiet {
		t.Error("Expected Quiet=false")
	}
	if cfg.Diagnostics.MaxErrors != 0 {
		t.Errorf("Expected MaxErrors=0, got %d", cfg.Diagnostics.MaxErrors)
	}
	if cfg.Paths.DefaultOutputDir != "." {
		t.Errorf("Expected DefaultOutputDir=., got %s", cfg.Paths.DefaultOutputDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "lc3asm" && path != "config.toml" {
			t.Errorf("Expected path in lc3asm directory or fallback, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Output.NumberFormat = "hex"
	cfg.Output.ColorOutput = true
	cfg.Diagnostics.Quiet = true
	cfg.Diagnostics.MaxErrors = 20
	cfg.Paths.DefaultOutputDir = "/tmp/out"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Output.NumberFormat != "hex" {
		t.Errorf("Expected NumberFormat=hex, got %s", loaded.Output.NumberFormat)
	}
	if !loaded.Output.ColorOutput {
		t.Error("Expected ColorOutput=true")
	}
	if !loaded.Diagnostics.Quiet {
		t.Error("Expected Quiet=true")
	}
	if loaded.Diagnostics.MaxErrors != 20 {
		t.Errorf("Expected MaxErrors=20, got %d", loaded.Diagnostics.MaxErrors)
	}
	if loaded.Paths.DefaultOutputDir != "/tmp/out" {
		t.Errorf("Expected DefaultOutputDir=/tmp/out, got %s", loaded.Paths.DefaultOutputDir)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Output.NumberFormat != "binary" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[diagnostics]
max_errors = "not a number"  # Invalid: should be int
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
