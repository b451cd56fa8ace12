// Package config handles global chipatlas configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultDataDirName is the directory under the user's home that holds the
// downloaded metadata tables. Kept compatible with earlier releases of this
// tool so existing caches are reused.
const DefaultDataDirName = "Chip_Atlasmcp"

// Config represents the global chipatlas configuration.
type Config struct {
	// DataDir holds the downloaded metadata tables (default ~/Chip_Atlasmcp).
	DataDir string `toml:"data_dir"`

	// ResultsDir holds exported CSVs (default <data_dir>/results).
	ResultsDir string `toml:"results_dir"`

	// BaseURL overrides the upstream archive root.
	BaseURL string `toml:"base_url"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output. Supported values
	// are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered guide
	// code blocks. Example values: "monokai", "dracula", "github".
	CodeTheme string `toml:"code_theme"`
}

// ResolveDataDir returns the effective data directory with precedence:
// explicit flag > config file > ~/Chip_Atlasmcp.
func (c *Config) ResolveDataDir(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if c != nil && strings.TrimSpace(c.DataDir) != "" {
		return expandHome(c.DataDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultDataDirName), nil
}

// ResolveResultsDir returns the effective results directory with precedence:
// explicit flag > config file > <data_dir>/results.
func (c *Config) ResolveResultsDir(flagValue, dataDir string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if c != nil && strings.TrimSpace(c.ResultsDir) != "" {
		return expandHome(c.ResultsDir)
	}
	return filepath.Join(dataDir, "results"), nil
}

func expandHome(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
	}
	return p, nil
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/chipatlas/config.toml first (XDG style),
// then falls back to the OS-specific config location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "chipatlas", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "chipatlas", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// CreateDefault creates a commented default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# chipatlas configuration

# Where downloaded ChIP-Atlas metadata tables are cached.
# data_dir = "~/Chip_Atlasmcp"

# Where filtered CSV exports are written.
# results_dir = "~/Chip_Atlasmcp/results"

# Upstream archive root (rarely needed).
# base_url = "https://dbarchive.biosciencedbc.jp/data/chip-atlas/LATEST"

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
