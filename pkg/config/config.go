/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultMaxUploadBytes is the largest replay accepted by default (64 MiB).
const DefaultMaxUploadBytes int64 = 64 << 20

// Config represents the RiftVault configuration
type Config struct {
	DataDir string  `yaml:"data_dir" env:"RIFTVAULT_DATA_DIR"`
	Port    int     `yaml:"port" env:"RIFTVAULT_PORT"`
	Bind    string  `yaml:"bind" env:"RIFTVAULT_BIND"`
	Logging Logging `yaml:"logging"`
	Upload  Upload  `yaml:"upload"`
	Players Players `yaml:"players"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level" env:"RIFTVAULT_LOG_LEVEL"`
	Format string `yaml:"format" env:"RIFTVAULT_LOG_FORMAT"`
}

// Upload limits what the ingest path accepts
type Upload struct {
	MaxBytes int64 `yaml:"max_bytes" env:"RIFTVAULT_MAX_UPLOAD_BYTES"`
}

// Players maps alternate accounts to a main account (aliases) and main
// accounts to display names (names). Keys and values are PUUIDs.
type Players struct {
	Aliases map[string]string `yaml:"aliases,omitempty"`
	Names   map[string]string `yaml:"names,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Upload: Upload{
			MaxBytes: DefaultMaxUploadBytes,
		},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so keys missing from the file keep their default.
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides config fields from RIFTVAULT_* environment variables.
// Unset variables leave the field as it is.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the values the server and CLI depend on.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("upload.max_bytes must be positive, got %d", c.Upload.MaxBytes))
	}
	for alt, main := range c.Players.Aliases {
		if alt == main {
			errs = append(errs, fmt.Errorf("player alias %s points to itself", alt))
		}
	}
	return errors.Join(errs...)
}

// BootstrapConfig writes a default configuration for dataDir to configPath
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./riftvault.yaml"
	}

	// For Linux/macOS, use ~/.config/riftvault/config.yaml
	configDir := filepath.Join(homeDir, ".config", "riftvault")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
