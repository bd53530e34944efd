// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	apperrors "premium-engine/internal/errors"
	"premium-engine/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" toml:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing" toml:"pricing"`

	// Claims selects the claims-history source
	Claims ClaimsConfig `json:"claims" toml:"claims"`

	// Output contains output configuration
	Output OutputConfig `json:"output" toml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" toml:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// RulesFile is an optional HCL file overriding the built-in tariff
	RulesFile string `json:"rules_file" toml:"rules_file"`

	// Timezone is the IANA zone in which "today" is evaluated for campaigns
	Timezone string `json:"timezone" toml:"timezone"`
}

// Claims backends
const (
	ClaimsBackendMemory   = "memory"
	ClaimsBackendFile     = "file"
	ClaimsBackendPostgres = "postgres"
)

// ClaimsConfig selects the claims-history backend
type ClaimsConfig struct {
	// Backend is memory, file or postgres
	Backend string `json:"backend" toml:"backend"`

	// Path is the JSON claims file for the file backend
	Path string `json:"path,omitempty" toml:"path"`

	// DSN is the connection string for the postgres backend
	DSN string `json:"dsn,omitempty" toml:"dsn"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format" toml:"default_format"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Timezone: "UTC",
		},
		Claims: ClaimsConfig{
			Backend: ClaimsBackendMemory,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate checks settings that would otherwise fail on first use
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.Claims.Backend {
	case ClaimsBackendMemory:
	case ClaimsBackendFile:
		if c.Claims.Path == "" {
			return apperrors.Config("claims.path is required for the file backend", nil)
		}
	case ClaimsBackendPostgres:
		if c.Claims.DSN == "" {
			return apperrors.Config("claims.dsn is required for the postgres backend", nil)
		}
	default:
		return apperrors.Newf(apperrors.TypeConfig, "unknown claims backend %q", c.Claims.Backend)
	}
	switch c.Output.DefaultFormat {
	case "cli", "json":
	default:
		return apperrors.Newf(apperrors.TypeConfig, "unknown output format %q", c.Output.DefaultFormat)
	}
	return nil
}

// Location resolves the pricing timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Pricing.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Pricing.Timezone)
	if err != nil {
		return nil, apperrors.Config("invalid pricing timezone", err).WithContext("timezone", c.Pricing.Timezone)
	}
	return loc, nil
}

// Save saves configuration to a file as JSON
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
