// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"print-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog contains stock catalog configuration
	Catalog CatalogConfig `json:"catalog"`

	// Pricing contains remote pricing configuration
	Pricing PricingConfig `json:"pricing"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig locates the stock catalog and bounds its freshness
type CatalogConfig struct {
	// Path is the catalog HCL file
	Path string `json:"path"`

	// TTLSeconds is how long a loaded snapshot stays fresh
	TTLSeconds int `json:"ttl_seconds"`
}

// PricingConfig configures the remote pricing delegation
type PricingConfig struct {
	// RemoteURL is the pricing service base URL; empty runs the local
	// preview path only
	RemoteURL string `json:"remote_url,omitempty"`

	// TimeoutSeconds bounds one pricing request
	TimeoutSeconds int `json:"timeout_seconds"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	catalogPath := filepath.Join(homeDir, ".print-cost", "catalog.hcl")

	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			Path:       catalogPath,
			TTLSeconds: 300,
		},
		Pricing: PricingConfig{
			TimeoutSeconds: 10,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
