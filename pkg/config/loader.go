package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFileNames are the config files looked up by Discover, in order
var DefaultFileNames = []string{
	".striprc.hcl",
	".striprc.yaml",
	".striprc.yml",
	".striprc.json",
	".striprc",
}

// 🔎 Discover returns the first default config file present in dir, or "" if none is
func Discover(dir string) (string, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .striprc will try both YAML and HCL formats
//
// A .env file next to the config and the process environment are applied on top.
// A relative root is resolved against the config file's directory. The returned
// config is not resolved; callers apply flag overrides and then call Resolve.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	dir := filepath.Dir(path)
	env, err := LoadEnv(dir)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	var cfg *Config

	switch {
	case ext == ".striprc" || filepath.Base(path) == ".striprc":
		cfg, err = loadYAML(data)
		if err != nil {
			logger.Debug().Err(err).Msg("config is not YAML, trying HCL")
			cfg, err = loadHCL(data, path, env)
			if err != nil {
				return nil, errors.Errorf("failed to parse .striprc as YAML or HCL: %w", err)
			}
		}
	case ext == ".json":
		cfg, err = loadJSON(data)
	case ext == ".yaml" || ext == ".yml":
		cfg, err = loadYAML(data)
	case ext == ".hcl":
		cfg, err = loadHCL(data, path, env)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(env); err != nil {
		return nil, errors.Errorf("applying environment: %w", err)
	}

	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(dir, cfg.Root)
	}
	cfg.location = path

	logger.Debug().Str("root", cfg.Root).Int("rules", len(cfg.Rules)).Str("preset", cfg.Preset).Msg("configuration loaded")

	return cfg, nil
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

type hclRule struct {
	Name       string   `hcl:"name,label"`
	Pattern    string   `hcl:"pattern"`
	Replace    string   `hcl:"replace,optional"`
	Multiline  *bool    `hcl:"multiline,optional"`
	DotAll     bool     `hcl:"dotall,optional"`
	IgnoreCase bool     `hcl:"ignore_case,optional"`
	Literal    bool     `hcl:"literal,optional"`
	Engine     string   `hcl:"engine,optional"`
	Files      []string `hcl:"files,optional"`
}

type hclWarning struct {
	Name            string `hcl:"name,label"`
	Pattern         string `hcl:"pattern"`
	RequireOriginal bool   `hcl:"require_original,optional"`
}

type hclConfig struct {
	Root         string       `hcl:"root,optional"`
	Include      []string     `hcl:"include,optional"`
	Exclude      []string     `hcl:"exclude,optional"`
	ExcludeGlobs []string     `hcl:"exclude_globs,optional"`
	Preset       string       `hcl:"preset,optional"`
	Rules        []hclRule    `hcl:"rule,block"`
	Warnings     []hclWarning `hcl:"warning,block"`
	DryRun       bool         `hcl:"dry_run,optional"`
	Diff         bool         `hcl:"diff,optional"`
	Verbose      bool         `hcl:"verbose,optional"`
}

// loadHCL loads a configuration from HCL data; env is exposed as the `env` object
func loadHCL(data []byte, filename string, env map[string]string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	envVals := make(map[string]cty.Value, len(env))
	for k, v := range env {
		envVals[k] = cty.StringVal(v)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envVals),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Root:         hclCfg.Root,
		Include:      hclCfg.Include,
		Exclude:      hclCfg.Exclude,
		ExcludeGlobs: hclCfg.ExcludeGlobs,
		Preset:       hclCfg.Preset,
		DryRun:       hclCfg.DryRun,
		Diff:         hclCfg.Diff,
		Verbose:      hclCfg.Verbose,
	}
	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, Rule{
			Name:       r.Name,
			Pattern:    r.Pattern,
			Replace:    r.Replace,
			Multiline:  r.Multiline,
			DotAll:     r.DotAll,
			IgnoreCase: r.IgnoreCase,
			Literal:    r.Literal,
			Engine:     r.Engine,
			Files:      r.Files,
		})
	}
	for _, w := range hclCfg.Warnings {
		cfg.Warnings = append(cfg.Warnings, WarningRule{
			Name:            w.Name,
			Pattern:         w.Pattern,
			RequireOriginal: w.RequireOriginal,
		})
	}

	return cfg, nil
}
