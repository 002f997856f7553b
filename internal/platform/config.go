package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional per-vault configuration file.
const ConfigFile = "jot.yaml"

// VaultConfig is the content of jot.yaml. Options passed in code win over it.
type VaultConfig struct {
	Codec     string `yaml:"codec,omitempty"`
	Key       string `yaml:"key,omitempty"`
	SystemDir string `yaml:"system_dir,omitempty"`
}

// LoadConfig reads jot.yaml from root. A missing file yields a zero config.
func LoadConfig(root string) (VaultConfig, error) {
	var cfg VaultConfig

	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}
	return cfg, nil
}

// WriteConfig stores cfg as jot.yaml in root.
func WriteConfig(root string, cfg VaultConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, ConfigFile), data, 0644)
}
