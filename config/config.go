// Package config loads and saves the emulator's TOML-format settings file
// (spec.md AMBIENT STACK, grounded on the teacher's config/config.go).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds every setting cmd/asm and cmd/sim read at startup.
type Config struct {
	Execution struct {
		MaxCycles   uint64 `toml:"max_cycles"`
		StackSize   uint   `toml:"stack_size"`
		EnableTrace bool   `toml:"enable_trace"`
	} `toml:"execution"`

	Assembler struct {
		DefaultDialect    string `toml:"default_dialect"` // "iris" or "cisc0"
		ReservedBitPolicy string `toml:"reserved_bit_policy"` // "warn" or "error"
	} `toml:"assembler"`

	Monitor struct {
		Enabled      bool   `toml:"enabled"`
		NumberFormat string `toml:"number_format"` // hex, dec, both
	} `toml:"monitor"`
}

// Default returns a Config populated with the emulator's built-in
// defaults.
func Default() *Config {
	cfg := &Config{}

	cfg.Execution.MaxCycles = 1_000_000
	cfg.Execution.StackSize = 65536
	cfg.Execution.EnableTrace = false

	cfg.Assembler.DefaultDialect = "iris"
	cfg.Assembler.ReservedBitPolicy = "error"

	cfg.Monitor.Enabled = false
	cfg.Monitor.NumberFormat = "hex"

	return cfg
}

// Path returns the platform-specific config file location.
func Path() string {
	var dir string

	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "retrovm")

	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		dir = filepath.Join(home, ".config", "retrovm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Load reads the default config file, falling back to Default() when it
// doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads config from an explicit path, falling back to Default()
// when it doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to an explicit path.
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
