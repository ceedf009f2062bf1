package text

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		content      string
		rules        []ReplacementRule
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:    "multiline_anchor",
			content: "keep\n  drop me\nkeep\n",
			rules: []ReplacementRule{
				{Pattern: `^[ \t]*drop me\n`, Multiline: true},
			},
			want:         "keep\nkeep\n",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "anchor_without_multiline",
			content: "keep\n  drop me\nkeep\n",
			rules: []ReplacementRule{
				{Pattern: `^[ \t]*drop me\n`},
			},
			want:         "keep\n  drop me\nkeep\n",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "dotall_block",
			content: "a\nif (x) {\n  y();\n}\nb\n",
			rules: []ReplacementRule{
				{Pattern: `if \(x\) \{.*?\}\n`, DotAll: true},
			},
			want:         "a\nb\n",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "block_without_dotall",
			content: "a\nif (x) {\n  y();\n}\nb\n",
			rules: []ReplacementRule{
				{Pattern: `if \(x\) \{.*?\}\n`},
			},
			want:         "a\nif (x) {\n  y();\n}\nb\n",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "first_closing_brace_overmatch",
			content: "if (x) {\n  if (y) {\n    z();\n  }\n  w();\n}\nrest\n",
			rules: []ReplacementRule{
				{Pattern: `if \(x\) \{.*?\}\n`, DotAll: true},
			},
			want:         "  w();\n}\nrest\n",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "template_expansion",
			content: "foo=1 bar=2",
			rules: []ReplacementRule{
				{Pattern: `(\w+)=(\d)`, Replace: "${2}:${1}"},
			},
			want:         "1:foo 2:bar",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "literal_replacement",
			content: "foo=1 bar=2",
			rules: []ReplacementRule{
				{Pattern: `(\w+)=(\d)`, Replace: "$1", Literal: true},
			},
			want:         "$1 $1",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "ignore_case",
			content: "Hello HELLO",
			rules: []ReplacementRule{
				{Pattern: `hello`, Replace: "hi", IgnoreCase: true},
			},
			want:         "hi hi",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "regexp2_lookahead",
			content: "user.id user.name",
			rules: []ReplacementRule{
				{Pattern: `user\.(?=id)`, Replace: "ctx.", Engine: EngineRegexp2},
			},
			want:         "ctx.id user.name",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "regexp2_backreference",
			content: "aa bb cd",
			rules: []ReplacementRule{
				{Pattern: `(\w)\1`, Replace: "<$1>", Engine: EngineRegexp2},
			},
			want:         "<a> <b> cd",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "regexp2_literal",
			content: "aa bb",
			rules: []ReplacementRule{
				{Pattern: `(\w)\1`, Replace: "$1", Literal: true, Engine: EngineRegexp2},
			},
			want:         "$1 $1",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "file_filter_skips_other_paths",
			path:    "app/api/lib.go",
			content: "secret",
			rules: []ReplacementRule{
				{Pattern: `secret`, FileFilterGlobs: []string{"**/*.ts"}},
			},
			want:         "secret",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "file_filter_matches",
			path:    "app/api/route.ts",
			content: "secret",
			rules: []ReplacementRule{
				{Pattern: `secret`, FileFilterGlobs: []string{"**/*.ts"}},
			},
			want:         "",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "replacement_equal_to_match",
			content: "same",
			rules: []ReplacementRule{
				{Pattern: `same`, Replace: "same"},
			},
			want:         "same",
			wantCount:    1,
			wantModified: false,
		},
		{
			name:    "empty_content",
			content: "",
			rules: []ReplacementRule{
				{Pattern: `World`, Replace: "Universe"},
			},
			want:         "",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_rules",
			content:      "Hello World",
			rules:        []ReplacementRule{},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline, err := Compile(tt.rules)
			require.NoError(t, err)

			path := tt.path
			if path == "" {
				path = "route.ts"
			}

			result, err := pipeline.ReplaceText(context.Background(), path, strings.NewReader(tt.content))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
			assert.Len(t, result.Steps, len(tt.rules))
		})
	}
}

func TestPipeline_RuleOrderMatters(t *testing.T) {
	content := "const a = 1;\nimport x;\nconst b = 2;\n"

	dropImport := ReplacementRule{Name: "drop-import", Pattern: `^import x;\n`, Multiline: true}
	joinConsts := ReplacementRule{Name: "join-consts", Pattern: `const a = 1;\nconst b = 2;\n`, Replace: "const ab = 3;\n"}

	forward, err := Compile([]ReplacementRule{dropImport, joinConsts})
	require.NoError(t, err)
	got, err := forward.Transform("route.ts", content)
	require.NoError(t, err)
	assert.Equal(t, "const ab = 3;\n", got)

	reversed, err := Compile([]ReplacementRule{joinConsts, dropImport})
	require.NoError(t, err)
	got, err = reversed.Transform("route.ts", content)
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\nconst b = 2;\n", got)
}

func TestPipeline_StepResults(t *testing.T) {
	pipeline, err := Compile([]ReplacementRule{
		{Name: "a", Pattern: `a`},
		{Pattern: `b`},
	})
	require.NoError(t, err)

	result, err := pipeline.ReplaceText(context.Background(), "f.ts", strings.NewReader("aab"))
	require.NoError(t, err)
	assert.Equal(t, []StepResult{{Name: "a", Count: 2}, {Name: "rule-2", Count: 1}}, result.Steps)
	assert.Equal(t, 3, result.ReplacementCount)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		rules     []ReplacementRule
		wantError string
	}{
		{
			name:      "missing_pattern",
			rules:     []ReplacementRule{{Name: "empty"}},
			wantError: "pattern is required",
		},
		{
			name:      "invalid_pattern",
			rules:     []ReplacementRule{{Pattern: `(unclosed`}},
			wantError: "compiling pattern",
		},
		{
			name:      "lookahead_needs_regexp2",
			rules:     []ReplacementRule{{Pattern: `user(?=\.)`}},
			wantError: "compiling pattern",
		},
		{
			name:      "unknown_engine",
			rules:     []ReplacementRule{{Pattern: `x`, Engine: "pcre"}},
			wantError: `unknown engine "pcre"`,
		},
		{
			name:      "names_failing_rule",
			rules:     []ReplacementRule{{Pattern: `ok`}, {Name: "broken", Pattern: `[`}},
			wantError: "rule 1 (broken)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRules(tt.rules)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
