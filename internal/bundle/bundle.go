// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package bundle

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/apex/log"
)

// KeyError reports a lookup miss inside a packaged archive. The zip layer
// raises it for any missing entry, file or not, so callers that want a plain
// not-found must translate it (internal/resource does).
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %q not found in bundle", e.Key)
}

// FS is a read-only view of a zip bundle satisfying fs.FS.
type FS struct {
	zr   *zip.Reader
	name string
}

// Open opens the bundle file at path.
func Open(path string) (*FS, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle %s: %w", path, err)
	}
	return New(raw, path)
}

// New builds an FS from raw zip bytes. name is used for display only.
func New(raw []byte, name string) (*FS, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", name, err)
	}
	log.Debugf("opened bundle %s (%d entries)", name, len(zr.File))
	return &FS{zr: zr, name: name}, nil
}

// Name returns the display name the bundle was opened under.
func (b *FS) Name() string {
	return b.name
}

// Open implements fs.FS. Missing entries come back as *KeyError.
func (b *FS) Open(name string) (fs.File, error) {
	f, err := b.zr.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &KeyError{Key: name}
		}
		return nil, err
	}
	return f, nil
}
