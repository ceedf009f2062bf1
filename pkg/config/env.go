package config

import (
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gitlab.com/tozd/go/errors"
)

// Environment overrides, applied after the config file and before flags
const (
	EnvRoot   = "STRIPRC_ROOT"
	EnvPreset = "STRIPRC_PRESET"
	EnvDryRun = "STRIPRC_DRY_RUN"
)

// LoadEnv reads an optional .env file in dir and layers the process environment over it
func LoadEnv(dir string) (map[string]string, error) {
	env := map[string]string{}

	dotenv := filepath.Join(dir, ".env")
	if _, err := os.Stat(dotenv); err == nil {
		vals, err := godotenv.Read(dotenv)
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", dotenv, err)
		}
		maps.Copy(env, vals)
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return env, nil
}

// ApplyEnv overrides config values with STRIPRC_* variables
func (cfg *Config) ApplyEnv(env map[string]string) error {
	if v := strings.TrimSpace(env[EnvRoot]); v != "" {
		cfg.Root = v
	}
	if v := strings.TrimSpace(env[EnvPreset]); v != "" {
		cfg.Preset = v
	}
	if v := strings.TrimSpace(env[EnvDryRun]); v != "" {
		dryRun, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Errorf("%s: %w", EnvDryRun, err)
		}
		cfg.DryRun = dryRun
	}
	return nil
}
