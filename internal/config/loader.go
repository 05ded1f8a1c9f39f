package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads a scene configuration.
// Search order: customPath -> ~/.tilequest/scenes/<id>.yaml -> ./scenes/<id>.yaml -> embedded default
func Load(sceneID, customPath string) (SceneConfig, error) {
	var cfg SceneConfig

	// Try custom path first
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

	filename := sceneID + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local scenes directory
	if data, err := os.ReadFile(filepath.Join("scenes", filename)); err == nil {
		cfg = SceneConfig{}
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	def := DefaultYAML(sceneID)
	if def == nil {
		return SceneConfig{}, fmt.Errorf("config: no configuration for scene %q", sceneID)
	}
	cfg = SceneConfig{}
	if err := yaml.Unmarshal(def, &cfg); err != nil {
		return DefaultTownConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user scene file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilequest", "scenes", filename)
}
