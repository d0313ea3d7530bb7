package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "rabbit.yaml"

// LoadRabbit loads Run Rabbit configuration.
// Search order: customPath -> ~/.rabbit/configs/rabbit.yaml -> ./configs/rabbit.yaml -> embedded default
//
// Files are decoded on top of DefaultRabbitConfig, so a partial file only overrides
// the keys it names. An explicit customPath must exist, parse and validate.
func LoadRabbit(customPath string) (RabbitConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RabbitConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseRabbit(data)
		if err != nil {
			return RabbitConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseRabbit(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := ParseRabbit(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseRabbit(defaultRabbitYAML)
	if err != nil {
		return DefaultRabbitConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseRabbit decodes YAML over the built-in defaults and validates the result.
func ParseRabbit(data []byte) (RabbitConfig, error) {
	cfg := DefaultRabbitConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RabbitConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RabbitConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rabbit", "configs", filename)
}

// ApplyRabbitPreset modifies the config based on a difficulty preset.
// The empty preset leaves the config untouched.
func ApplyRabbitPreset(cfg *RabbitConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Fox.ChaseTicks = cfg.Fox.ChaseTicks * 2 / 3
	case DifficultyHard:
		// Let the fox close in past the catch distance.
		cfg.Fox.ApproachMargin = cfg.Fox.CatchMargin / 2
		// Close half the gap to world speed; the fox stays slower than the scroll.
		cfg.Fox.SpeedFactor += (1 - cfg.Fox.SpeedFactor) / 2
	}
}
