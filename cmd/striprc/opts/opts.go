package opts

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/striprc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains the flag values shared by all commands
type RootOpts struct {
	ConfigFile string
	Root       string
	Include    []string
	Exclude    []string
	Preset     string
	DryRun     bool
	Diff       bool
	Verbose    bool
	Strict     bool
	Debug      bool
}

// 📥 LoadConfig builds the run configuration: the config file (given or discovered in
// the working directory), then environment overrides, then flags. The result is resolved.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	logger := zerolog.Ctx(ctx)

	path := o.ConfigFile
	if path == "" {
		found, err := config.Discover(".")
		if err != nil {
			return nil, errors.Errorf("discovering config file: %w", err)
		}
		path = found
	}

	var cfg *config.Config
	if path != "" {
		loaded, err := config.LoadConfig(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		logger.Debug().Msg("no config file found, using flags only")
		env, err := config.LoadEnv(".")
		if err != nil {
			return nil, err
		}
		cfg = &config.Config{}
		if err := cfg.ApplyEnv(env); err != nil {
			return nil, err
		}
	}

	o.apply(cfg)

	if cfg.Root == "" {
		cfg.Root = "."
	}
	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.Errorf("getting absolute root path: %w", err)
	}
	cfg.Root = abs

	if err := cfg.Resolve(); err != nil {
		return nil, errors.Errorf("invalid config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Str("file", cfg.Location()).Msg("configuration loaded")
	return cfg, nil
}

// apply overrides config values with flags that were set
func (o *RootOpts) apply(cfg *config.Config) {
	if o.Root != "" {
		cfg.Root = o.Root
	}
	if len(o.Include) > 0 {
		cfg.Include = o.Include
	}
	if len(o.Exclude) > 0 {
		cfg.Exclude = o.Exclude
	}
	if o.Preset != "" {
		cfg.Preset = o.Preset
	}
	cfg.DryRun = cfg.DryRun || o.DryRun
	cfg.Diff = cfg.Diff || o.Diff
	cfg.Verbose = cfg.Verbose || o.Verbose
}
