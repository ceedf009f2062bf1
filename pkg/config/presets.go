package config

import (
	"sort"
)

// 📦 Preset is a named, ready-made rule set with its discovery defaults
type Preset struct {
	Name        string
	Description string
	Include     []string
	Exclude     []string
	Rules       []Rule
	Warnings    []WarningRule
}

const authModule = `["']@/lib/utils/auth["']`

var presets = map[string]Preset{
	"next-auth": {
		Name:        "next-auth",
		Description: "remove getAuthenticatedUser/isAuthError usage from Next.js route handlers, whole lines only",
		Include:     []string{"**/route.ts"},
		Exclude:     []string{"/api/public/"},
		Rules: []Rule{
			{
				Name:    "auth-import",
				Pattern: `^[ \t]*import[ \t]*\{[^}]*\b(?:getAuthenticatedUser|isAuthError)\b[^}]*\}[ \t]*from[ \t]*` + authModule + `;?[ \t]*\r?\n`,
			},
			{
				// the block ends at the first line that closes with a brace
				Name:    "auth-check-block",
				Pattern: `^[ \t]*const[ \t]+auth[ \t]*=[ \t]*await[ \t]+getAuthenticatedUser[ \t]*\([^;]*\);?[ \t]*\r?\n[ \t]*if[ \t]*\([ \t]*isAuthError[ \t]*\([ \t]*auth[ \t]*\)[ \t]*\)[ \t]*\{.*?\}[ \t]*\r?\n`,
				DotAll:  true,
			},
			{
				Name:    "auth-declaration",
				Pattern: `^[ \t]*const[ \t]+auth[ \t]*=[ \t]*await[ \t]+getAuthenticatedUser\b[^;]*;[ \t]*\r?\n`,
			},
			{
				Name:    "auth-destructure",
				Pattern: `^[ \t]*const[ \t]*\{[^}]*\}[ \t]*=[ \t]*auth;?[ \t]*\r?\n`,
			},
			{
				Name:    "workspace-id",
				Pattern: `^[ \t]*const[ \t]+workspaceId[ \t]*=[ \t]*auth\.workspaceId(?:[ \t]*\|\|[ \t]*null)?;?[ \t]*\r?\n`,
			},
		},
		Warnings: []WarningRule{
			{Name: "user-reference", Pattern: `\buser\.(?:_id|id|email|name|organizationDomain)\b`},
			{Name: "workspace-reference", Pattern: `\bworkspaceId\b`, RequireOriginal: true},
			{Name: "auth-reference", Pattern: `\bauth\.\w+`},
		},
	},

	// first-generation rules, patterns frozen
	"next-auth-v1": {
		Name:        "next-auth-v1",
		Description: "first-generation auth stripping rules (exact import forms, brace-free check blocks)",
		Include:     []string{"**/route.ts"},
		Exclude:     []string{"/api/public/"},
		Rules: []Rule{
			{Name: "import-user-and-error", Pattern: `import\s+\{\s*getAuthenticatedUser\s*,?\s*isAuthError\s*\}\s+from\s+` + authModule + `;?\s*\n`},
			{Name: "import-error-and-user", Pattern: `import\s+\{\s*isAuthError\s*,?\s*getAuthenticatedUser\s*\}\s+from\s+` + authModule + `;?\s*\n`},
			{Name: "import-user", Pattern: `import\s+\{\s*getAuthenticatedUser\s*\}\s+from\s+` + authModule + `;?\s*\n`},
			{Name: "import-error", Pattern: `import\s+\{\s*isAuthError\s*\}\s+from\s+` + authModule + `;?\s*\n`},
			{Name: "auth-check-block", Pattern: `\s*const\s+auth\s*=\s*await\s+getAuthenticatedUser\([^)]*\);\s*\n\s*if\s*\(\s*isAuthError\s*\(\s*auth\s*\)\s*\)\s*\{[^}]*\}\s*\n`},
			{Name: "destructure-user-session", Pattern: `\s*const\s+\{\s*user\s*(?:,\s*session\s*)?\}\s*=\s*auth;\s*\n`},
			{Name: "destructure-session-user", Pattern: `\s*const\s+\{\s*session\s*,\s*user\s*\}\s*=\s*auth;\s*\n`},
			{Name: "workspace-id", Pattern: `\s*const\s+workspaceId\s*=\s*auth\.workspaceId\s*\|\|\s*null;\s*\n`},
		},
		Warnings: []WarningRule{
			{Name: "user-reference", Pattern: `user\.|user,`},
		},
	},

	// second-generation rules, patterns frozen
	"next-auth-v2": {
		Name:        "next-auth-v2",
		Description: "second-generation auth stripping rules (any import list, NextResponse.json check blocks); warnings are also reported for files the rules left unchanged",
		Include:     []string{"**/route.ts"},
		Exclude:     []string{"/api/public/"},
		Rules: []Rule{
			{Name: "auth-import", Pattern: `import\s*\{[^}]*getAuthenticatedUser[^}]*\}\s*from\s*` + authModule + `;?\s*\n`},
			{
				Name:    "auth-check-block",
				Pattern: `\s*const\s+auth\s*=\s*await\s+getAuthenticatedUser\([^)]*\);?\s*\n\s*if\s*\(\s*isAuthError\s*\(\s*auth\s*\)\s*\)\s*\{\s*\n\s*return\s+NextResponse\.json\([^)]*\)\s*;\s*\n\s*\}\s*\n?`,
				DotAll:  true,
			},
			{Name: "auth-destructure", Pattern: `\s*const\s*\{[^}]*\}\s*=\s*auth;?\s*\n`},
			{Name: "auth-declaration", Pattern: `\s*const\s+auth\s*=\s*await\s+getAuthenticatedUser[^;]+;\s*\n`},
		},
		Warnings: []WarningRule{
			{Name: "user-reference", Pattern: `\buser\.(id|email|name|organizationDomain)\b`},
			{Name: "workspace-reference", Pattern: `\bworkspaceId\b`, RequireOriginal: true},
		},
	},
}

// LookupPreset returns the preset registered under name
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames lists preset names in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets lists all presets in name order
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, name := range PresetNames() {
		out = append(out, presets[name])
	}
	return out
}
