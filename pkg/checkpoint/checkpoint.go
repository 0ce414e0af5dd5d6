/*
 * Copyright 2025 Helmguard Security
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package checkpoint persists sync watermarks durably across restarts.
package checkpoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a durable single-value store keyed by collection name. Read
// returns found=false when no checkpoint has ever been written, which
// callers treat as a bootstrap signal.
type Store interface {
	Read(ctx context.Context, key string) (value string, found bool, err error)
	Write(ctx context.Context, key, value string) error
	Close() error
}

// FileStore keeps one file per key under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a FileStore.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint dir %s: %w", dir, err)
	}

	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	// Keys are collection names, but never trust them as path components.
	safe := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(key)

	return filepath.Join(f.dir, safe+".checkpoint")
}

func (f *FileStore) Read(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to read checkpoint %s: %w", key, err)
	}

	return strings.TrimSpace(string(data)), true, nil
}

// Write replaces the checkpoint atomically via a temp file and rename, so a
// crash mid-write leaves the previous value intact.
func (f *FileStore) Write(_ context.Context, key, value string) error {
	tmp, err := os.CreateTemp(f.dir, filepath.Base(f.path(key))+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint for %s: %w", key, err)
	}

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write checkpoint %s: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to close temp checkpoint for %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to replace checkpoint %s: %w", key, err)
	}

	return nil
}

func (*FileStore) Close() error {
	return nil
}

var _ Store = (*FileStore)(nil)
