package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	apperrors "premium-engine/internal/errors"
)

// Load reads a JSON or TOML (by extension) configuration file on top of the
// defaults, then applies PREMIUM_* environment overrides. A missing file
// yields the defaults. The result has not been validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, apperrors.Config("failed to read config", err).WithContext("path", path)
		case strings.EqualFold(filepath.Ext(path), ".toml"):
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, apperrors.Parsing("invalid TOML config "+path, err)
			}
		default:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, apperrors.Parsing("invalid JSON config "+path, err)
			}
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets operators inject the claims DSN and similar
// settings at deploy time without touching the file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Pricing.RulesFile, "PREMIUM_RULES_FILE")
	setStr(&cfg.Pricing.Timezone, "PREMIUM_TIMEZONE")

	setStr(&cfg.Claims.Backend, "PREMIUM_CLAIMS_BACKEND")
	setStr(&cfg.Claims.Path, "PREMIUM_CLAIMS_PATH")
	setStr(&cfg.Claims.DSN, "PREMIUM_CLAIMS_DSN")

	setStr(&cfg.Output.DefaultFormat, "PREMIUM_OUTPUT_FORMAT")

	setStr(&cfg.Logging.Level, "PREMIUM_LOG_LEVEL")
	setStr(&cfg.Logging.Format, "PREMIUM_LOG_FORMAT")
	setStr(&cfg.Logging.Output, "PREMIUM_LOG_OUTPUT")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
