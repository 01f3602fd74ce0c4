package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSweeper loads the sweeper configuration and validates it.
// Search order: customPath -> ~/.sweeper/configs/sweeper.yaml -> ./configs/sweeper.yaml -> embedded default
func LoadSweeper(customPath string) (SweeperConfig, error) {
	cfg, err := loadSweeper(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func loadSweeper(customPath string) (SweeperConfig, error) {
	// Fields missing from a file keep their built-in values.
	cfg := DefaultSweeperConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath("sweeper.yaml"),
		filepath.Join("configs", "sweeper.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fromFile := DefaultSweeperConfig()
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, nil
		}
	}

	if err := yaml.Unmarshal(defaultSweeperYAML, &cfg); err != nil {
		return DefaultSweeperConfig(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sweeper", "configs", filename)
}

// ApplyDifficulty returns the board for a difficulty preset.
func ApplyDifficulty(cfg SweeperConfig, d DifficultyPreset) BoardConfig {
	b, _ := cfg.Board(PresetForDifficulty(d))
	return b
}

// WithCustomBoard returns cfg with non-zero fields of override applied to
// the custom preset.
func WithCustomBoard(cfg SweeperConfig, override BoardConfig) SweeperConfig {
	if override.Rows > 0 {
		cfg.Custom.Rows = override.Rows
	}
	if override.Cols > 0 {
		cfg.Custom.Cols = override.Cols
	}
	if override.Mines > 0 {
		cfg.Custom.Mines = override.Mines
	}
	return cfg
}
