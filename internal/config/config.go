// Package config loads consult configuration from YAML with environment
// overrides. The config file is optional; every field has a usable
// default so the binary runs with nothing but an API key in the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all consult configuration.
type Config struct {
	// LLM backend configuration
	LLM LLMConfig `yaml:"llm"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// UI preferences
	UI UIConfig `yaml:"ui"`

	// Path to an optional personas.yaml catalog replacing the built-ins
	PersonasPath string `yaml:"personas_path"`
}

// LLMConfig configures the completion backend.
type LLMConfig struct {
	Provider string  `yaml:"provider"` // gemini (REST), genai (SDK), mock
	APIKey   string  `yaml:"api_key"`
	Model    string  `yaml:"model"`
	BaseURL  string  `yaml:"base_url"`
	Timeout  string  `yaml:"timeout"`
	Temp     float64 `yaml:"temperature"`
}

// LoggingConfig configures the categorized file logger.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"`
}

// UIConfig configures view-layer defaults.
type UIConfig struct {
	Theme     string `yaml:"theme"`      // light, dark, auto
	SplitView bool   `yaml:"split_view"` // split (chat+workspace) vs stacked
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-3-pro-preview",
			BaseURL:  "https://generativelanguage.googleapis.com/v1beta",
			Timeout:  "2m",
			Temp:     0.7,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
		UI: UIConfig{
			Theme:     "auto",
			SplitView: true,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".consult", "config.yaml")
}

// StateDir returns the directory for logs and exports.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".consult"
	}
	return filepath.Join(home, ".consult")
}

// Load reads the config file at path, applies defaults for unset fields,
// then applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to env overrides.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

// applyEnv applies environment variable overrides after file load.
func (c *Config) applyEnv() {
	if v := os.Getenv("CONSULT_API_KEY"); v != "" {
		c.LLM.APIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("CONSULT_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("CONSULT_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if os.Getenv("CONSULT_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// fillDefaults restores defaults for fields a partial file zeroed out.
func (c *Config) fillDefaults() {
	def := Default()
	if c.LLM.Provider == "" {
		c.LLM.Provider = def.LLM.Provider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = def.LLM.Model
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = def.LLM.BaseURL
	}
	if c.LLM.Timeout == "" {
		c.LLM.Timeout = def.LLM.Timeout
	}
	if c.LLM.Temp == 0 {
		c.LLM.Temp = def.LLM.Temp
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// RequestTimeout parses the configured timeout, defaulting to 2 minutes.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}
