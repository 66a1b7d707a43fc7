package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// configFile is the path of the user config relative to the XDG config dirs.
var configFile = filepath.Join("blockfall", "blocks.yaml")

// LoadBlocks loads the game configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/blockfall/blocks.yaml -> ./configs/blocks.yaml -> embedded default
//
// Files are decoded over the defaults, so partial files only override the
// keys they name.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "blocks.yaml")); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(defaultBlocksYAML, &cfg); err != nil {
		return DefaultBlocksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, cfg.Validate()
}

// Marshal encodes cfg as YAML.
func Marshal(cfg BlocksConfig) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return out, nil
}

func loadFile(path string) (BlocksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultBlocksConfig(), fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// UserConfigPath returns the existing user config file, or empty if none is found.
func UserConfigPath() string {
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return ""
	}
	return path
}

// WriteUserConfig writes the embedded defaults to the user config location
// and returns its path. An existing file is left untouched.
func WriteUserConfig() (string, error) {
	path, err := xdg.ConfigFile(configFile)
	if err != nil {
		return "", fmt.Errorf("config: locate user config: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, defaultBlocksYAML, 0o644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}
