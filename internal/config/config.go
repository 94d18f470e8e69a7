package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Server ServerConfig `json:"server"`
	SAM    SAMConfig    `json:"sam"`
	Export ExportConfig `json:"export"`
}

// ServerConfig holds configuration for the HTTP server
type ServerConfig struct {
	Addr           string   `json:"addr"`
	Mode           string   `json:"mode"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// SAMConfig holds configuration for the segmentation service client
type SAMConfig struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// ExportConfig holds configuration for dataset export
type ExportConfig struct {
	OverlayFormat string `json:"overlay_format"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "debug",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://127.0.0.1:5173",
			},
		},
		SAM: SAMConfig{
			URL:            "http://localhost:8000",
			TimeoutSeconds: 120,
		},
		Export: ExportConfig{
			OverlayFormat: "png",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}

	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("server.mode must be debug or release")
	}

	if c.SAM.URL == "" {
		return fmt.Errorf("sam.url cannot be empty")
	}

	if c.SAM.TimeoutSeconds < 1 {
		return fmt.Errorf("sam.timeout_seconds must be positive")
	}

	if c.Export.OverlayFormat != "png" && c.Export.OverlayFormat != "webp" {
		return fmt.Errorf("export.overlay_format must be png or webp")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "maskset", "config.json")
}
