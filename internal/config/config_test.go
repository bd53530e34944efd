package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "premium-engine/internal/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Claims.Backend != "memory" {
		t.Errorf("Expected memory backend, got %s", cfg.Claims.Backend)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "premium.json")
	doc := `{"pricing": {"timezone": "Europe/Paris"}, "claims": {"backend": "file", "path": "claims.json"}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pricing.Timezone != "Europe/Paris" || cfg.Claims.Path != "claims.json" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Output.DefaultFormat != "cli" {
		t.Error("Unset fields must keep their defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "premium.toml")
	doc := `
[pricing]
rules_file = "rules.hcl"

[claims]
backend = "postgres"
dsn = "postgres://pricing@localhost/claims?sslmode=disable"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pricing.RulesFile != "rules.hcl" || cfg.Claims.Backend != "postgres" || cfg.Logging.Level != "debug" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Pricing.Timezone != "UTC" {
		t.Errorf("Expected default timezone, got %s", cfg.Pricing.Timezone)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "premium.json")
	_ = os.WriteFile(path, []byte(`{"pricing": `), 0644)
	if _, err := Load(path); !apperrors.IsType(err, apperrors.TypeParsing) {
		t.Errorf("Expected parsing error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PREMIUM_CLAIMS_BACKEND", "file")
	t.Setenv("PREMIUM_CLAIMS_PATH", "/srv/claims.json")
	t.Setenv("PREMIUM_LOG_LEVEL", "error")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Claims.Backend != "file" || cfg.Claims.Path != "/srv/claims.json" {
		t.Errorf("Env overrides not applied: %+v", cfg.Claims)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Expected log level error, got %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad timezone", func(c *Config) { c.Pricing.Timezone = "Mars/Olympus" }},
		{"unknown backend", func(c *Config) { c.Claims.Backend = "mongo" }},
		{"file without path", func(c *Config) { c.Claims.Backend = "file" }},
		{"postgres without dsn", func(c *Config) { c.Claims.Backend = "postgres" }},
		{"unknown format", func(c *Config) { c.Output.DefaultFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !apperrors.IsType(err, apperrors.TypeConfig) {
				t.Errorf("Expected config error, got %v", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "premium.json")
	cfg := Default()
	cfg.Pricing.RulesFile = "tariff.hcl"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Pricing.RulesFile != "tariff.hcl" {
		t.Errorf("Expected rules file to survive save, got %q", loaded.Pricing.RulesFile)
	}
}
