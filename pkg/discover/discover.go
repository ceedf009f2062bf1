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

// Package discover finds candidate files under a root directory.
package discover

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrRootNotFound is returned when the root does not exist
	ErrRootNotFound = errors.Base("root not found")
	// ErrRootNotDir is returned when the root is a file
	ErrRootNotDir = errors.Base("root is not a directory")
)

// 🎯 Options selects candidate files
type Options struct {
	Root         string   // directory to scan
	Include      []string // doublestar globs relative to Root
	Exclude      []string // substrings of the slash-separated Root/rel path
	ExcludeGlobs []string // doublestar globs relative to Root
}

// 📄 Candidate is a file selected for processing
type Candidate struct {
	Path string // Root joined with Rel
	Rel  string // slash-separated path relative to Root
}

// 🔍 Find enumerates files under opts.Root matching any include glob and not excluded.
// Order is glob traversal order, with duplicates across include globs dropped.
// Any error here is a discovery error: nothing has been read or written yet.
func Find(ctx context.Context, fsys afero.Fs, opts Options) ([]Candidate, error) {
	logger := zerolog.Ctx(ctx)

	info, err := fsys.Stat(opts.Root)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return nil, errors.Errorf("%w: %s", ErrRootNotFound, opts.Root)
		}
		return nil, errors.Errorf("reading root %s: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s", ErrRootNotDir, opts.Root)
	}

	rooted := afero.NewIOFS(afero.NewBasePathFs(fsys, opts.Root))

	seen := map[string]bool{}
	var candidates []Candidate
	for _, pattern := range opts.Include {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("discovery cancelled: %w", err)
		}

		matches, err := doublestar.Glob(rooted, pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}

		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true

			full := filepath.Join(opts.Root, filepath.FromSlash(rel))
			if reason, excluded := isExcluded(opts, full, rel); excluded {
				logger.Debug().Str("file", rel).Str("rule", reason).Msg("file excluded")
				continue
			}

			candidates = append(candidates, Candidate{Path: full, Rel: rel})
		}
	}

	logger.Debug().Str("root", opts.Root).Int("candidates", len(candidates)).Msg("discovery complete")
	return candidates, nil
}

// isExcluded reports the first exclusion rule that drops the file
func isExcluded(opts Options, full, rel string) (string, bool) {
	slashed := path.Clean(filepath.ToSlash(full))
	for _, sub := range opts.Exclude {
		if strings.Contains(slashed, sub) {
			return sub, true
		}
	}
	for _, glob := range opts.ExcludeGlobs {
		if ok, err := doublestar.Match(glob, rel); err == nil && ok {
			return glob, true
		}
	}
	return "", false
}
