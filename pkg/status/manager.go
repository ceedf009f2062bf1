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
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// tempSuffix is appended to a file's name while its replacement is written
const tempSuffix = ".striprc.tmp"

// maxLinkHops bounds symlink resolution, matching the usual ELOOP limit
const maxLinkHops = 40

// 💾 FileManager handles the file reads and writes of a run
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, content []byte) error
}

// 🔧 Manager implements FileManager on an afero filesystem
type Manager struct {
	fs afero.Fs
}

// 🏭 NewManager creates a new file manager
func NewManager(fs afero.Fs) *Manager {
	return &Manager{fs: fs}
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFile replaces the whole file. The new content goes to a temp file next to
// it that is renamed over the original, so the file keeps its permission bits and
// readers never see a partial write. A symlink is written through: the file it
// points to gets the content and the link stays in place.
func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	path, err := m.resolveLinks(path)
	if err != nil {
		return errors.Errorf("resolving symlink: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := m.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := m.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tempPath := path + tempSuffix
	if err := afero.WriteFile(m.fs, tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := m.fs.Rename(tempPath, path); err != nil {
		_ = m.fs.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 🔗 resolveLinks follows symlinks until path names a regular file (or nothing).
// Filesystems without symlink support return path unchanged.
func (m *Manager) resolveLinks(path string) (string, error) {
	lstater, ok := m.fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := m.fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for i := 0; i < maxLinkHops; i++ {
		info, lstatCalled, err := lstater.LstatIfPossible(path)
		if err != nil {
			if os.IsNotExist(err) {
				return path, nil
			}
			return "", err
		}
		if !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}

	return "", errors.Errorf("too many levels of symbolic links: %s", path)
}
