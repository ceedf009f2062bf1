package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/striprc/pkg/text"
)

const routeWithAuth = `import { NextResponse } from "next/server";
import { getAuthenticatedUser, isAuthError } from "@/lib/utils/auth";

export async function PUT(req: Request) {
  try {
    const auth = await getAuthenticatedUser(undefined, { createUserIfNotFound: true });
    if (isAuthError(auth)) {
      return NextResponse.json({ message: auth.error }, { status: auth.status });
    }
    const { user } = auth;

    const body = await req.json();
    return NextResponse.json({ body });
  } catch (error) {
    return NextResponse.json({ error: String(error) }, { status: 500 });
  }
}
`

const routeWithInlineCheck = `export async function GET() {
  const auth = await getAuthenticatedUser();
  if (isAuthError(auth)) { return unauthorized(); }
  const { user, session } = auth;
  return ok(user.id);
}
`

const routeWithoutAuth = `import { NextResponse } from "next/server";

export async function GET() {
  return NextResponse.json({ ok: true });
}
`

func presetPipeline(t *testing.T, name string) (*text.Pipeline, *text.Checker) {
	t.Helper()
	cfg := &Config{Root: "/srv/app", Preset: name}
	require.NoError(t, cfg.Resolve())

	pipeline, err := text.Compile(cfg.TextRules())
	require.NoError(t, err)
	checker, err := text.NewChecker(cfg.TextWarnings())
	require.NoError(t, err)
	return pipeline, checker
}

func TestPresets_Transform(t *testing.T) {
	tests := []struct {
		name         string
		preset       string
		content      string
		want         string
		wantContains []string
		wantWarnings []string
	}{
		{
			name:    "next_auth_removes_exactly_three_constructs",
			preset:  "next-auth",
			content: routeWithAuth,
			want: `import { NextResponse } from "next/server";

export async function PUT(req: Request) {
  try {

    const body = await req.json();
    return NextResponse.json({ body });
  } catch (error) {
    return NextResponse.json({ error: String(error) }, { status: 500 });
  }
}
`,
		},
		{
			name:    "next_auth_inline_check",
			preset:  "next-auth",
			content: routeWithInlineCheck,
			want: `export async function GET() {
  return ok(user.id);
}
`,
			wantWarnings: []string{"user-reference"},
		},
		{
			name:    "next_auth_v2_exact_output",
			preset:  "next-auth-v2",
			content: routeWithAuth,
			want: `import { NextResponse } from "next/server";
export async function PUT(req: Request) {
  try {    const body = await req.json();
    return NextResponse.json({ body });
  } catch (error) {
    return NextResponse.json({ error: String(error) }, { status: 500 });
  }
}
`,
		},
		{
			name:    "next_auth_v1_brace_free_block",
			preset:  "next-auth-v1",
			content: routeWithInlineCheck,
			want: `export async function GET() {  return ok(user.id);
}
`,
			wantWarnings: []string{"user-reference"},
		},
		{
			name:    "next_auth_v1_under_matches_braced_return",
			preset:  "next-auth-v1",
			content: routeWithAuth,
			wantContains: []string{
				"if (isAuthError(auth)) {",
				"getAuthenticatedUser(undefined",
			},
		},
		{
			name:    "no_auth_left_alone",
			preset:  "next-auth",
			content: routeWithoutAuth,
			want:    routeWithoutAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline, checker := presetPipeline(t, tt.preset)

			got, err := pipeline.Transform("api/route.ts", tt.content)
			require.NoError(t, err)

			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			}
			for _, s := range tt.wantContains {
				assert.Contains(t, got, s)
			}

			var rules []string
			for _, w := range checker.Check([]byte(tt.content), []byte(got)) {
				rules = append(rules, w.Rule)
			}
			assert.Equal(t, tt.wantWarnings, rules)
		})
	}
}

func TestPresets_Idempotent(t *testing.T) {
	fixtures := []string{routeWithAuth, routeWithInlineCheck, routeWithoutAuth}

	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			pipeline, _ := presetPipeline(t, name)
			for _, fixture := range fixtures {
				once, err := pipeline.Transform("api/route.ts", fixture)
				require.NoError(t, err)
				twice, err := pipeline.Transform("api/route.ts", once)
				require.NoError(t, err)
				assert.Equal(t, once, twice)
			}
		})
	}
}

func TestPresets_Listing(t *testing.T) {
	assert.Equal(t, []string{"next-auth", "next-auth-v1", "next-auth-v2"}, PresetNames())

	for _, p := range Presets() {
		assert.NotEmpty(t, p.Description, p.Name)
		assert.Equal(t, []string{"**/route.ts"}, p.Include, p.Name)
		assert.Equal(t, []string{"/api/public/"}, p.Exclude, p.Name)
	}

	_, ok := LookupPreset("missing")
	assert.False(t, ok)

	v2, ok := LookupPreset("next-auth-v2")
	require.True(t, ok)
	assert.Contains(t, v2.Description, "warnings are also reported for files the rules left unchanged")
}

func TestPresets_WarnOnUnchangedFiles(t *testing.T) {
	// no rule matches, yet the leftover user reference is still reported
	content := "export async function GET() {\n  return ok(user.id);\n}\n"

	pipeline, checker := presetPipeline(t, "next-auth-v2")
	got, err := pipeline.Transform("api/route.ts", content)
	require.NoError(t, err)
	require.Equal(t, content, got)

	warnings := checker.Check([]byte(content), []byte(got))
	require.Len(t, warnings, 1)
	assert.Equal(t, "user-reference", warnings[0].Rule)
}
