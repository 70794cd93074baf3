package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default locations used when neither a flag nor a settings file overrides them.
const (
	DefaultBaseURL   = "https://training.rpstrength.com"
	DefaultOutputDir = "output"
	DefaultCacheDir  = "conf"
)

// Settings holds tunables that rarely change between runs.
// Flags always win over settings-file values.
type Settings struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	CacheDir  string `yaml:"cache_dir,omitempty"`
}

// LoadSettings reads settings, layering in precedence order:
//  1. built-in defaults
//  2. <config dir>/meso.yaml (global)
//  3. ./meso.yaml (per-directory)
//  4. $MESO_API_BASE for the base URL
//
// Missing files are not errors; malformed YAML is.
func LoadSettings() (*Settings, error) {
	settings := &Settings{
		BaseURL:   DefaultBaseURL,
		OutputDir: DefaultOutputDir,
		CacheDir:  DefaultCacheDir,
	}

	if dir := Dir(); dir != "" {
		if err := mergeFile(settings, filepath.Join(dir, "meso.yaml")); err != nil {
			return nil, err
		}
	}
	if err := mergeFile(settings, "meso.yaml"); err != nil {
		return nil, err
	}

	if base := os.Getenv("MESO_API_BASE"); base != "" {
		settings.BaseURL = base
	}

	return settings, nil
}

// mergeFile overlays non-empty values from a YAML file onto settings.
func mergeFile(settings *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading settings file %s: %w", path, err)
	}

	var overlay Settings
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	if overlay.BaseURL != "" {
		settings.BaseURL = overlay.BaseURL
	}
	if overlay.OutputDir != "" {
		settings.OutputDir = overlay.OutputDir
	}
	if overlay.CacheDir != "" {
		settings.CacheDir = overlay.CacheDir
	}
	return nil
}
