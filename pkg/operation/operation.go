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

package operation

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/striprc/pkg/config"
	"github.com/walteh/striprc/pkg/discover"
	"github.com/walteh/striprc/pkg/log"
	"github.com/walteh/striprc/pkg/status"
	"github.com/walteh/striprc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the stripper
type Options struct {
	// Config is the resolved striprc configuration
	Config *config.Config
	// Fs is the filesystem discovery runs against
	Fs afero.Fs
	// Files reads and writes candidate files, defaults to a status.Manager on Fs
	Files status.FileManager
	// Logger prints per-file lines, defaults to a logger that discards console output
	Logger *log.Logger
}

// ✂️ Stripper applies the configured rules to every candidate file under the root
type Stripper struct {
	config   *config.Config
	fs       afero.Fs
	files    status.FileManager
	logger   *log.Logger
	replacer text.TextReplacer
	checker  *text.Checker
}

// 🏭 New creates a stripper, compiling every rule and warning up front
func New(opts Options) (*Stripper, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Fs == nil {
		return nil, errors.Errorf("filesystem is required")
	}

	if err := opts.Config.Resolve(); err != nil {
		return nil, errors.Errorf("resolving config: %w", err)
	}

	pipeline, err := text.Compile(opts.Config.TextRules())
	if err != nil {
		return nil, errors.Errorf("compiling rules: %w", err)
	}

	checker, err := text.NewChecker(opts.Config.TextWarnings())
	if err != nil {
		return nil, errors.Errorf("compiling warnings: %w", err)
	}

	files := opts.Files
	if files == nil {
		files = status.NewManager(opts.Fs)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, zerolog.Disabled)
	}

	return &Stripper{
		config:   opts.Config,
		fs:       opts.Fs,
		files:    files,
		logger:   logger,
		replacer: pipeline,
		checker:  checker,
	}, nil
}

// 🚀 Run discovers candidate files and processes them one at a time, in discovery order.
// Discovery failures abort the run before any file is touched. Per-file failures are
// recorded in the report and processing continues with the next file.
func (s *Stripper) Run(ctx context.Context) (*status.Report, error) {
	logger := zerolog.Ctx(ctx)
	cfg := s.config

	logger.Debug().Str("config", cfg.String()).Msg("starting run")

	candidates, err := discover.Find(ctx, s.fs, discover.Options{
		Root:         cfg.Root,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		ExcludeGlobs: cfg.ExcludeGlobs,
	})
	if err != nil {
		return nil, errors.Errorf("discovering files: %w", err)
	}

	report := status.NewReport(cfg.Root, len(candidates), cfg.DryRun)

	verb := "stripping"
	if cfg.DryRun {
		verb = "checking"
	}
	s.logger.Header(verb + " " + cfg.Root)
	s.logger.Infof("found %d candidate files", len(candidates))

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return report, errors.Errorf("run cancelled after %d files: %w", len(report.Entries), err)
		}

		entry, diff := s.processFile(ctx, c)
		report.Record(entry)
		s.logEntry(ctx, entry)
		if diff != "" {
			s.logger.Raw(diff)
		}
	}

	logger.Debug().
		Int("discovered", report.Discovered).
		Int("modified", report.ModifiedCount()).
		Int("errored", report.ErrorCount()).
		Msg("run complete")

	return report, nil
}

// 📄 processFile runs read, transform, compare, write and warning checks for one file.
// It returns the diff to print when diff output is enabled and the content changed.
func (s *Stripper) processFile(ctx context.Context, c discover.Candidate) (status.FileEntry, string) {
	logger := zerolog.Ctx(ctx).With().Str("file", c.Rel).Logger()
	entry := status.FileEntry{Path: c.Rel}

	content, err := s.files.ReadFile(ctx, c.Path)
	if err != nil {
		logger.Debug().Err(err).Msg("read failed")
		entry.Status = status.StatusError
		entry.Err = err
		return entry, ""
	}

	result, err := s.replacer.ReplaceText(logger.WithContext(ctx), c.Rel, bytes.NewReader(content))
	if err != nil {
		entry.Status = status.StatusError
		entry.Err = errors.Errorf("transforming: %w", err)
		return entry, ""
	}
	entry.Replacements = result.ReplacementCount

	if !result.WasModified {
		entry.Status = status.StatusUnchanged
		entry.Warnings = s.checker.Check(result.OriginalContent, result.ModifiedContent)
		return entry, ""
	}

	if s.config.DryRun {
		entry.Status = status.StatusWouldModify
	} else {
		if err := s.files.WriteFile(ctx, c.Path, result.ModifiedContent); err != nil {
			logger.Debug().Err(err).Msg("write failed")
			entry.Status = status.StatusError
			entry.Err = err
			return entry, ""
		}
		entry.Status = status.StatusModified
	}

	entry.Warnings = s.checker.Check(result.OriginalContent, result.ModifiedContent)

	var diff string
	if s.config.Diff {
		diff = text.Diff(c.Rel, string(result.OriginalContent), string(result.ModifiedContent))
	}
	return entry, diff
}

// 📝 logEntry prints the per-file line. Unchanged files without warnings are only shown when verbose.
func (s *Stripper) logEntry(ctx context.Context, entry status.FileEntry) {
	if entry.Status == status.StatusUnchanged && len(entry.Warnings) == 0 && !s.config.Verbose {
		return
	}

	s.logger.LogFileOperation(ctx, log.FileOperation{
		Path:         entry.Path,
		Status:       entry.Status.String(),
		IsModified:   entry.Status == status.StatusModified,
		WouldModify:  entry.Status == status.StatusWouldModify,
		IsError:      entry.Status == status.StatusError,
		Replacements: entry.Replacements,
		Warnings:     len(entry.Warnings),
	})

	if entry.Err != nil {
		s.logger.Errorf("%s: %v", entry.Path, entry.Err)
	}
	for _, w := range entry.Warnings {
		s.logger.Warningf("%s: %s still matches %q", entry.Path, w.Rule, w.Match)
	}
}
