package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "spacedrop.yaml"

// Load loads the Space Drop configuration.
// Search order: customPath -> ~/.spacedrop/configs/spacedrop.yaml ->
// ./configs/spacedrop.yaml -> embedded default.
// Files are decoded on top of the defaults, so partial files are valid.
// The result is validated before it is returned.
func Load(customPath string) (SpaceDropConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SpaceDropConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return SpaceDropConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(FileName), filepath.Join("configs", FileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultSpaceDropYAML)
	if err != nil {
		return DefaultSpaceDropConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (SpaceDropConfig, error) {
	cfg := DefaultSpaceDropConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SpaceDropConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SpaceDropConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spacedrop", "configs", filename)
}
