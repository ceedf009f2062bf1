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
	"fmt"
	"io"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔗 Step is one pure text -> text transformation of the pipeline
type Step interface {
	// Name identifies the step
	Name() string

	// Apply transforms content of the file at path and reports how many matches it replaced
	Apply(path, content string) (string, int, error)
}

// 🏭 Pipeline applies an ordered list of steps, each one seeing the previous step's output
type Pipeline struct {
	steps []Step
}

var _ TextReplacer = (*Pipeline)(nil)

// NewPipeline creates a pipeline from already built steps
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// 🏗️ Compile builds a pipeline from replacement rules, in order
func Compile(rules []ReplacementRule) (*Pipeline, error) {
	steps := make([]Step, 0, len(rules))
	for i, rule := range rules {
		rule.Name = ruleLabel(rule, i)
		step, err := NewRegexStep(rule)
		if err != nil {
			return nil, errors.Errorf("rule %d (%s): %w", i, rule.Name, err)
		}
		steps = append(steps, step)
	}
	return NewPipeline(steps...), nil
}

// ValidateRules checks that every rule compiles
func ValidateRules(rules []ReplacementRule) error {
	_, err := Compile(rules)
	return err
}

// 🔄 ReplaceText implements TextReplacer
func (p *Pipeline) ReplaceText(ctx context.Context, path string, content io.Reader) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	logger := zerolog.Ctx(ctx)

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
		Steps:           make([]StepResult, 0, len(p.steps)),
	}

	current := string(originalContent)
	for _, step := range p.steps {
		next, count, err := step.Apply(path, current)
		if err != nil {
			return nil, errors.Errorf("applying %s: %w", step.Name(), err)
		}

		if count > 0 {
			logger.Trace().Str("file", path).Str("step", step.Name()).Int("matches", count).Msg("step matched")
		}

		result.Steps = append(result.Steps, StepResult{Name: step.Name(), Count: count})
		result.ReplacementCount += count
		current = next
	}

	result.ModifiedContent = []byte(current)
	result.WasModified = current != string(originalContent)
	return result, nil
}

// Transform is ReplaceText for in-memory strings
func (p *Pipeline) Transform(path, content string) (string, error) {
	current := content
	for _, step := range p.steps {
		next, _, err := step.Apply(path, current)
		if err != nil {
			return "", errors.Errorf("applying %s: %w", step.Name(), err)
		}
		current = next
	}
	return current, nil
}

// matchesFilter reports whether path is selected by the globs; no globs selects everything
func matchesFilter(globs []string, path string) bool {
	if len(globs) == 0 {
		return true
	}
	slashed := filepath.ToSlash(path)
	for _, glob := range globs {
		if ok, err := doublestar.Match(glob, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

func ruleLabel(rule ReplacementRule, i int) string {
	if rule.Name != "" {
		return rule.Name
	}
	return fmt.Sprintf("rule-%d", i+1)
}
