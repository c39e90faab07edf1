package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config represents the orgsocial configuration
type Config struct {
	FeedFile     string        `yaml:"feed_file"`
	LogFile      string        `yaml:"log_file"`
	Client       string        `yaml:"client"`
	AutoParse    bool          `yaml:"auto_parse"`
	FetchTimeout time.Duration `yaml:"-"` // Custom YAML handling below
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		FeedFile:     filepath.Join(home, "social.org"),
		LogFile:      "/tmp/orgsocial.log",
		Client:       "orgsocial",
		FetchTimeout: 10 * time.Second,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "orgsocial", "config.yml")
	}
	return filepath.Join(home, ".config", "orgsocial", "config.yml")
}

// rawConfig mirrors Config with the timeout as a string, so the file can
// say "10s" or "1m".
type rawConfig struct {
	FeedFile     string `yaml:"feed_file"`
	LogFile      string `yaml:"log_file"`
	Client       string `yaml:"client"`
	AutoParse    bool   `yaml:"auto_parse"`
	FetchTimeout string `yaml:"fetch_timeout"`
}

// Load reads configuration from the config file
func Load() (*Config, error) {
	configPath := ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	timeout := 10 * time.Second
	if raw.FetchTimeout != "" {
		timeout, err = time.ParseDuration(raw.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid fetch_timeout format '%s': %w", raw.FetchTimeout, err)
		}
	}

	client := raw.Client
	if client == "" {
		client = "orgsocial"
	}

	cfg := &Config{
		FeedFile:     raw.FeedFile,
		LogFile:      raw.LogFile,
		Client:       client,
		AutoParse:    raw.AutoParse,
		FetchTimeout: timeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config file
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		FeedFile:     c.FeedFile,
		LogFile:      c.LogFile,
		Client:       c.Client,
		AutoParse:    c.AutoParse,
		FetchTimeout: c.FetchTimeout.String(),
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FeedFile == "" {
		return fmt.Errorf("feed_file cannot be empty")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.FeedFile, err = expandPath(c.FeedFile)
	if err != nil {
		return fmt.Errorf("failed to expand feed_file: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
