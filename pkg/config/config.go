// Package config handles configuration for screenpilot.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file omits a value.
const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "llava-phi3"
	DefaultCacheTTL    = 3 // seconds
	DefaultOCRLanguage = "eng"
)

// Config represents the workspace configuration (config.yaml).
type Config struct {
	// Device settings
	ADBPath string `yaml:"adbPath"` // Explicit adb binary; empty means PATH lookup
	Device  string `yaml:"device"`  // Device serial; empty means first connected

	// Vision model settings
	OllamaURL   string `yaml:"ollamaUrl"`
	OllamaModel string `yaml:"ollamaModel"`

	// Screenshot cache
	CacheTTLSeconds int `yaml:"cacheTtlSeconds"`

	// OCR settings
	OCRLanguage string `yaml:"ocrLanguage"`

	// Extra action-word synonyms merged into the built-in knowledge map.
	Knowledge map[string][]string `yaml:"knowledge"`
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return defaults
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OllamaURL == "" {
		c.OllamaURL = DefaultOllamaURL
	}
	if c.OllamaModel == "" {
		c.OllamaModel = DefaultOllamaModel
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = DefaultCacheTTL
	}
	if c.OCRLanguage == "" {
		c.OCRLanguage = DefaultOCRLanguage
	}
}
