package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Variant names a game variant; it selects the config file and embedded defaults.
type Variant string

const (
	VariantDodge   Variant = "dodge"
	VariantClassic Variant = "classic"
)

// Defaults returns the hardcoded configuration for a variant.
func Defaults(v Variant) DodgeConfig {
	if v == VariantClassic {
		return DefaultClassicConfig()
	}
	return DefaultDodgeConfig()
}

func embedded(v Variant) []byte {
	if v == VariantClassic {
		return defaultClassicYAML
	}
	return defaultDodgeYAML
}

// Load loads configuration for a variant.
// Search order: customPath -> ~/.arcade/configs/<variant>.yaml -> ./configs/<variant>.yaml -> embedded default.
// Files are layered over the hardcoded defaults, so partial files are fine.
func Load(v Variant, customPath string) (DodgeConfig, error) {
	filename := string(v) + ".yaml"

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(v, data)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(v, data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := Parse(v, data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(v, embedded(v))
	if err != nil {
		return Defaults(v), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the variant's defaults and validates the result.
func Parse(v Variant, data []byte) (DodgeConfig, error) {
	cfg := Defaults(v)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DodgeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return DodgeConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg DodgeConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
