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

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
		check   func(t *testing.T, out string)
	}{
		{
			name: "version",
			args: []string{"version"},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "striprc version info")
				assert.Contains(t, out, "Platform:")
			},
		},
		{
			name: "version_json",
			args: []string{"version", "--json"},
			check: func(t *testing.T, out string) {
				var info VersionInfo
				require.NoError(t, json.Unmarshal([]byte(out), &info))
				assert.NotEmpty(t, info.Version)
				assert.NotEmpty(t, info.GoVersion)
			},
		},
		{
			name: "presets",
			args: []string{"presets"},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "next-auth")
				assert.Contains(t, out, "next-auth-v1")
				assert.Contains(t, out, "next-auth-v2")
			},
		},
		{
			name:    "unknown_flag",
			args:    []string{"run", "--nope"},
			wantErr: "unknown flag",
		},
		{
			name:    "missing_config_file",
			args:    []string{"run", "--config", "does-not-exist.hcl"},
			wantErr: "reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			cmd := newRootCmd()
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, buf.String())
		})
	}
}

func TestRootFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "root", "include", "exclude", "preset", "dry-run", "diff", "verbose", "strict", "debug"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
	assert.Equal(t, "v", cmd.PersistentFlags().Lookup("verbose").Shorthand)
	assert.Equal(t, "d", cmd.PersistentFlags().Lookup("debug").Shorthand)
}
