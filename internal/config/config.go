package config

import (
	"fmt"
	"os"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds the analyzed source file settings
type DataConfig struct {
	File string
}

// DatabaseConfig holds the dataset catalog settings
type DatabaseConfig struct {
	// Path is the sqlite file recording dataset load history. Empty
	// disables the catalog.
	Path string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    envOr("PORT", "8080"),
			GinMode: envOr("GIN_MODE", "release"),
		},
		Data: DataConfig{
			File: envOr("ATTRITION_FILE", "data/HR-Employee-Attrition.csv"),
		},
		Database: DatabaseConfig{
			Path: os.Getenv("CATALOG_DB"),
		},
	}

	if cfg.Data.File == "" {
		return nil, fmt.Errorf("ATTRITION_FILE must point at the attrition CSV/XLSX file")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
