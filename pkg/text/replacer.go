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

package text

import (
	"context"
	"io"
)

// Engine selects the regular expression implementation used by a rule
type Engine string

const (
	// EngineRE2 uses the standard library regexp package (linear time, no lookaround)
	EngineRE2 Engine = "re2"
	// EngineRegexp2 uses dlclark/regexp2 (backtracking, supports lookaround and backreferences)
	EngineRegexp2 Engine = "regexp2"
)

// ReplacementRule defines a single regex substitution applied to whole-file content
type ReplacementRule struct {
	// Name identifies the rule in logs and reports
	Name string

	// Pattern is the regular expression searched for
	Pattern string

	// Replace is the replacement text; $1 / ${name} are expanded unless Literal is set
	Replace string

	// Multiline makes ^ and $ match at line boundaries
	Multiline bool

	// DotAll makes . match newlines
	DotAll bool

	// IgnoreCase makes the match case-insensitive
	IgnoreCase bool

	// Literal disables template expansion in Replace
	Literal bool

	// Engine selects the regex implementation, empty means EngineRE2
	Engine Engine

	// FileFilterGlobs limits the rule to paths matching one of the globs, empty means all paths
	FileFilterGlobs []string
}

// StepResult records what one step of the pipeline did to a file
type StepResult struct {
	Name  string
	Count int
}

// ReplacementResult contains the results of running the pipeline over one file
type ReplacementResult struct {
	// WasModified indicates the final content differs byte-for-byte from the original
	WasModified bool

	// ReplacementCount is the number of matches replaced across all steps
	ReplacementCount int

	// Steps holds per-step match counts in pipeline order
	Steps []StepResult

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText runs the replacer over the content of the file at path
	ReplaceText(ctx context.Context, path string, content io.Reader) (*ReplacementResult, error)
}
