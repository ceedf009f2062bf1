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
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// regexp2 backtracks, so a pathological pattern is bounded per file
const regexp2MatchTimeout = 10 * time.Second

// 🔍 NewRegexStep compiles a rule into a pipeline step
func NewRegexStep(rule ReplacementRule) (Step, error) {
	if rule.Pattern == "" {
		return nil, errors.New("pattern is required")
	}

	switch rule.Engine {
	case "", EngineRE2:
		re, err := regexp.Compile(re2Flags(rule) + rule.Pattern)
		if err != nil {
			return nil, errors.Errorf("compiling pattern: %w", err)
		}
		return &re2Step{rule: rule, re: re}, nil
	case EngineRegexp2:
		re, err := regexp2.Compile(rule.Pattern, regexp2Options(rule))
		if err != nil {
			return nil, errors.Errorf("compiling pattern: %w", err)
		}
		re.MatchTimeout = regexp2MatchTimeout
		return &regexp2Step{rule: rule, re: re}, nil
	default:
		return nil, errors.Errorf("unknown engine %q", rule.Engine)
	}
}

func re2Flags(rule ReplacementRule) string {
	flags := ""
	if rule.Multiline {
		flags += "m"
	}
	if rule.DotAll {
		flags += "s"
	}
	if rule.IgnoreCase {
		flags += "i"
	}
	if flags == "" {
		return ""
	}
	return "(?" + flags + ")"
}

func regexp2Options(rule ReplacementRule) regexp2.RegexOptions {
	opts := regexp2.None
	if rule.Multiline {
		opts |= regexp2.Multiline
	}
	if rule.DotAll {
		opts |= regexp2.Singleline
	}
	if rule.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	return opts
}

// re2Step applies a rule with the standard library engine
type re2Step struct {
	rule ReplacementRule
	re   *regexp.Regexp
}

func (s *re2Step) Name() string { return s.rule.Name }

func (s *re2Step) Apply(path, content string) (string, int, error) {
	if !matchesFilter(s.rule.FileFilterGlobs, path) {
		return content, 0, nil
	}

	count := len(s.re.FindAllStringIndex(content, -1))
	if count == 0 {
		return content, 0, nil
	}

	if s.rule.Literal {
		return s.re.ReplaceAllLiteralString(content, s.rule.Replace), count, nil
	}
	return s.re.ReplaceAllString(content, s.rule.Replace), count, nil
}

// regexp2Step applies a rule with the backtracking engine
type regexp2Step struct {
	rule ReplacementRule
	re   *regexp2.Regexp
}

func (s *regexp2Step) Name() string { return s.rule.Name }

func (s *regexp2Step) Apply(path, content string) (string, int, error) {
	if !matchesFilter(s.rule.FileFilterGlobs, path) {
		return content, 0, nil
	}

	count := 0
	m, err := s.re.FindStringMatch(content)
	for m != nil && err == nil {
		count++
		m, err = s.re.FindNextMatch(m)
	}
	if err != nil {
		return "", 0, errors.Errorf("matching: %w", err)
	}
	if count == 0 {
		return content, 0, nil
	}

	var out string
	if s.rule.Literal {
		out, err = s.re.ReplaceFunc(content, func(regexp2.Match) string { return s.rule.Replace }, -1, -1)
	} else {
		out, err = s.re.Replace(content, s.rule.Replace, -1, -1)
	}
	if err != nil {
		return "", 0, errors.Errorf("replacing: %w", err)
	}
	return out, count, nil
}
