// Package config loads the assembler's optional TOML configuration file,
// mirroring how a larger CLI tool keeps its settings in a platform-resolved
// config directory rather than hard-coded flags alone.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the settings documented in the assembler's configuration
// reference: output rendering, diagnostic verbosity, and default paths.
type Config struct {
	Output struct {
		NumberFormat  string `toml:"number_format"` // "binary" or "hex"
		ColorOutput   bool   `toml:"color_output"`
		ListingWidth  int    `toml:"listing_width"`
	} `toml:"output"`

	Diagnostics struct {
		Quiet     bool `toml:"quiet"`
		MaxErrors int  `toml:"max_errors"`
	} `toml:"diagnostics"`

	Paths struct {
		DefaultOutputDir string `toml:"default_output_dir"`
	} `toml:"paths"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Output.NumberFormat = "binary"
	cfg.Output.ColorOutput = false
	cfg.Output.ListingWidth = 80

	cfg.Diagnostics.Quiet = false
	cfg.Diagnostics.MaxErrors = 0

	cfg.Paths.DefaultOutputDir = "."

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "lc3asm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "lc3asm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, falling back to
// DefaultConfig if the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
