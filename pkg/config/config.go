// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/striprc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is an ordered (pattern, replacement) pair applied to whole-file content
type Rule struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Pattern    string   `json:"pattern" yaml:"pattern"`
	Replace    string   `json:"replace,omitempty" yaml:"replace,omitempty"`
	Multiline  *bool    `json:"multiline,omitempty" yaml:"multiline,omitempty"` // nil means true
	DotAll     bool     `json:"dotall,omitempty" yaml:"dotall,omitempty"`
	IgnoreCase bool     `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
	Literal    bool     `json:"literal,omitempty" yaml:"literal,omitempty"`
	Engine     string   `json:"engine,omitempty" yaml:"engine,omitempty"`
	Files      []string `json:"files,omitempty" yaml:"files,omitempty"` // optional glob filter
}

// ⚠️ WarningRule is an advisory check against transformed content
type WarningRule struct {
	Name            string `json:"name" yaml:"name"`
	Pattern         string `json:"pattern" yaml:"pattern"`
	RequireOriginal bool   `json:"require_original,omitempty" yaml:"require_original,omitempty"`
}

// 📚 Config represents the complete configuration of a run
type Config struct {
	Root         string        `json:"root" yaml:"root"`
	Include      []string      `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude      []string      `json:"exclude,omitempty" yaml:"exclude,omitempty"`             // path substrings
	ExcludeGlobs []string      `json:"exclude_globs,omitempty" yaml:"exclude_globs,omitempty"` // globs relative to root
	Preset       string        `json:"preset,omitempty" yaml:"preset,omitempty"`
	Rules        []Rule        `json:"rules,omitempty" yaml:"rules,omitempty"`
	Warnings     []WarningRule `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	DryRun       bool          `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Diff         bool          `json:"diff,omitempty" yaml:"diff,omitempty"`
	Verbose      bool          `json:"verbose,omitempty" yaml:"verbose,omitempty"`

	location string
	resolved bool
}

// Location returns the file the config was loaded from, empty when built from flags
func (cfg *Config) Location() string {
	return cfg.location
}

// 🧩 Resolve expands the preset into the config and validates the result.
// Preset rules run before user rules; preset include/exclude are used only when unset.
func (cfg *Config) Resolve() error {
	if !cfg.resolved && cfg.Preset != "" {
		preset, ok := LookupPreset(cfg.Preset)
		if !ok {
			return errors.Errorf("unknown preset %q (available: %s)", cfg.Preset, strings.Join(PresetNames(), ", "))
		}

		cfg.Rules = append(slices.Clone(preset.Rules), cfg.Rules...)
		cfg.Warnings = append(slices.Clone(preset.Warnings), cfg.Warnings...)
		if len(cfg.Include) == 0 {
			cfg.Include = slices.Clone(preset.Include)
		}
		if len(cfg.Exclude) == 0 {
			cfg.Exclude = slices.Clone(preset.Exclude)
		}
	}
	cfg.resolved = true

	return cfg.Validate()
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.Errorf("root is required")
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if len(cfg.Include) == 0 {
		return errors.Errorf("include is required")
	}
	for _, glob := range cfg.Include {
		if !doublestar.ValidatePattern(glob) {
			return errors.Errorf("include: invalid glob %q", glob)
		}
	}
	for _, glob := range cfg.ExcludeGlobs {
		if !doublestar.ValidatePattern(glob) {
			return errors.Errorf("exclude_globs: invalid glob %q", glob)
		}
	}
	for _, sub := range cfg.Exclude {
		if sub == "" {
			return errors.Errorf("exclude: empty substring would exclude every file")
		}
	}

	if len(cfg.Rules) == 0 {
		return errors.Errorf("no rules configured (set rules or a preset)")
	}
	for i, rule := range cfg.Rules {
		if rule.Pattern == "" {
			return errors.Errorf("rule %d: pattern is required", i)
		}
		switch text.Engine(rule.Engine) {
		case "", text.EngineRE2, text.EngineRegexp2:
		default:
			return errors.Errorf("rule %d: unknown engine %q", i, rule.Engine)
		}
		for _, glob := range rule.Files {
			if !doublestar.ValidatePattern(glob) {
				return errors.Errorf("rule %d: invalid files glob %q", i, glob)
			}
		}
	}

	if err := text.ValidateRules(cfg.TextRules()); err != nil {
		return errors.Errorf("compiling rules: %w", err)
	}
	if _, err := text.NewChecker(cfg.TextWarnings()); err != nil {
		return errors.Errorf("compiling warnings: %w", err)
	}

	return nil
}

// TextRules converts the configured rules into pipeline rules, in order
func (cfg *Config) TextRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, text.ReplacementRule{
			Name:            r.Name,
			Pattern:         r.Pattern,
			Replace:         r.Replace,
			Multiline:       r.Multiline == nil || *r.Multiline,
			DotAll:          r.DotAll,
			IgnoreCase:      r.IgnoreCase,
			Literal:         r.Literal,
			Engine:          text.Engine(r.Engine),
			FileFilterGlobs: r.Files,
		})
	}
	return rules
}

// TextWarnings converts the configured warning rules
func (cfg *Config) TextWarnings() []text.WarningRule {
	warnings := make([]text.WarningRule, 0, len(cfg.Warnings))
	for _, w := range cfg.Warnings {
		warnings = append(warnings, text.WarningRule{
			Name:            w.Name,
			Pattern:         w.Pattern,
			RequireOriginal: w.RequireOriginal,
		})
	}
	return warnings
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := "write"
	if cfg.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s [%s] -%s (%d rules, %s)",
		cfg.Root, strings.Join(cfg.Include, ","), strings.Join(cfg.Exclude, ","), len(cfg.Rules), mode)
}
