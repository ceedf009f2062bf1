package text

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// WarningRule is an advisory check run against transformed content
type WarningRule struct {
	Name    string
	Pattern string

	// RequireOriginal only reports when the original content matched as well
	RequireOriginal bool
}

// ⚠️ Warning reports a leftover the rules did not clean up
type Warning struct {
	Rule  string
	Match string
}

// Checker evaluates warning rules; it never alters content
type Checker struct {
	rules []WarningRule
	res   []*regexp.Regexp
}

// 🏗️ NewChecker compiles warning rules (multi-line mode)
func NewChecker(rules []WarningRule) (*Checker, error) {
	c := &Checker{rules: rules, res: make([]*regexp.Regexp, 0, len(rules))}
	for i, rule := range rules {
		if rule.Pattern == "" {
			return nil, errors.Errorf("warning %d: pattern is required", i)
		}
		re, err := regexp.Compile("(?m)" + rule.Pattern)
		if err != nil {
			return nil, errors.Errorf("warning %d (%s): compiling pattern: %w", i, rule.Name, err)
		}
		c.res = append(c.res, re)
	}
	return c, nil
}

// 🔍 Check returns one warning per rule that matches modified
func (c *Checker) Check(original, modified []byte) []Warning {
	var warnings []Warning
	for i, re := range c.res {
		match := re.Find(modified)
		if match == nil {
			continue
		}
		if c.rules[i].RequireOriginal && !re.Match(original) {
			continue
		}
		warnings = append(warnings, Warning{Rule: c.rules[i].Name, Match: string(match)})
	}
	return warnings
}
