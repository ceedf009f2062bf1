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

package status

import (
	"github.com/walteh/striprc/pkg/text"
)

// 📊 FileStatus represents the outcome for one candidate file
type FileStatus int

const (
	StatusUnknown     FileStatus = iota
	StatusUnchanged              // Content identical after all rules, not written
	StatusModified               // Content changed and written back
	StatusWouldModify            // Content changed, dry run so not written
	StatusError                  // Read, transform or write failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusWouldModify:
		return "would modify"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// 📄 FileEntry is the per-file record of a run
type FileEntry struct {
	Path         string         // Path relative to root
	Status       FileStatus     // Outcome
	Replacements int            // Matches replaced across all rules
	Warnings     []text.Warning // Advisory leftovers found in the final content
	Err          error          // Set when Status is StatusError
}

// 🗂️ Report accumulates the results of a run in processing order
type Report struct {
	Root       string
	DryRun     bool
	Discovered int
	Entries    []FileEntry
}

// NewReport creates an empty report for a run over root
func NewReport(root string, discovered int, dryRun bool) *Report {
	return &Report{
		Root:       root,
		DryRun:     dryRun,
		Discovered: discovered,
		Entries:    make([]FileEntry, 0, discovered),
	}
}

// Record appends a file entry
func (r *Report) Record(entry FileEntry) {
	r.Entries = append(r.Entries, entry)
}

// Modified returns the relative paths of files whose content changed (written, or would be in a dry run)
func (r *Report) Modified() []string {
	var out []string
	for _, e := range r.Entries {
		if e.Status == StatusModified || e.Status == StatusWouldModify {
			out = append(out, e.Path)
		}
	}
	return out
}

// ModifiedCount is len(Modified())
func (r *Report) ModifiedCount() int {
	return len(r.Modified())
}

// Errors returns the entries that failed
func (r *Report) Errors() []FileEntry {
	var out []FileEntry
	for _, e := range r.Entries {
		if e.Status == StatusError {
			out = append(out, e)
		}
	}
	return out
}

// ErrorCount is len(Errors())
func (r *Report) ErrorCount() int {
	return len(r.Errors())
}

// Warned returns the entries carrying at least one advisory warning
func (r *Report) Warned() []FileEntry {
	var out []FileEntry
	for _, e := range r.Entries {
		if len(e.Warnings) > 0 {
			out = append(out, e)
		}
	}
	return out
}
