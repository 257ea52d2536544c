// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/resctl/resctlgo/internal/bundle"
)

// Location is a resolved spot in the resource tree. Two kinds exist: a real
// filesystem directory and an fs.FS-backed virtual tree (zip bundle or
// embedded assets). Both produce identical relative-path strings from Glob.
type Location interface {
	// Resolve descends to the named child. Pure; no I/O.
	Resolve(name string) Location
	Exists() bool
	IsDir() bool
	// List returns the names of the immediate children.
	List() ([]string, error)
	// Glob lists entries directly under subdir whose name ends in ext, as
	// POSIX paths rooted at this location ("html/log.html"). A missing
	// subdir yields an empty result on the dir kind but an error on the
	// tree kind. Preserved source behavior, asymmetric on purpose.
	Glob(subdir, ext string) ([]string, error)
	ReadText() (string, error)
	ReadBytes() ([]byte, error)
	String() string
}

// notFound is the single normalized not-found error for missing resources,
// regardless of whether the miss came from the filesystem or an archive
// key lookup.
func notFound(name string) error {
	return fmt.Errorf("resource %s: %w", name, fs.ErrNotExist)
}

// dirLocation is the loose-tree (and frozen executable) kind.
type dirLocation struct {
	// root is the absolute base directory; rel the POSIX path under it.
	root string
	rel  string
}

// NewDirLocation roots a Location at a real directory.
func NewDirLocation(dir string) Location {
	return dirLocation{root: dir, rel: "."}
}

func (d dirLocation) osPath() string {
	return filepath.Join(d.root, filepath.FromSlash(d.rel))
}

func (d dirLocation) Resolve(name string) Location {
	return dirLocation{root: d.root, rel: path.Join(d.rel, name)}
}

func (d dirLocation) Exists() bool {
	_, err := os.Stat(d.osPath())
	return err == nil
}

func (d dirLocation) IsDir() bool {
	info, err := os.Stat(d.osPath())
	return err == nil && info.IsDir()
}

func (d dirLocation) List() ([]string, error) {
	entries, err := os.ReadDir(d.osPath())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (d dirLocation) Glob(subdir, ext string) ([]string, error) {
	pattern := filepath.Join(d.root, filepath.FromSlash(path.Join(d.rel, subdir)), "*"+ext)
	// filepath.Glob only errors on a malformed pattern, which "*"+ext can't
	// be. A missing subdir is an empty match set here, unlike the tree kind.
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, path.Join(subdir, filepath.Base(m)))
	}
	return names, nil
}

func (d dirLocation) ReadText() (string, error) {
	raw, err := d.ReadBytes()
	return string(raw), err
}

func (d dirLocation) ReadBytes() ([]byte, error) {
	raw, err := os.ReadFile(d.osPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(d.rel)
		}
		return nil, err
	}
	return raw, nil
}

func (d dirLocation) String() string {
	return fmt.Sprintf("dir:%s", d.osPath())
}

// treeLocation is the archive kind, backed by any fs.FS (zip bundle,
// embedded assets).
type treeLocation struct {
	fsys fs.FS
	// desc describes the backing tree for display ("bundle:app.zip").
	desc string
	rel  string
}

// NewTreeLocation roots a Location at an fs.FS. desc is display-only.
func NewTreeLocation(fsys fs.FS, desc string) Location {
	return treeLocation{fsys: fsys, desc: desc, rel: "."}
}

func (t treeLocation) Resolve(name string) Location {
	return treeLocation{fsys: t.fsys, desc: t.desc, rel: path.Join(t.rel, name)}
}

func (t treeLocation) Exists() bool {
	_, err := fs.Stat(t.fsys, t.rel)
	return err == nil
}

func (t treeLocation) IsDir() bool {
	info, err := fs.Stat(t.fsys, t.rel)
	return err == nil && info.IsDir()
}

func (t treeLocation) List() ([]string, error) {
	entries, err := fs.ReadDir(t.fsys, t.rel)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (t treeLocation) Glob(subdir, ext string) ([]string, error) {
	entries, err := fs.ReadDir(t.fsys, path.Join(t.rel, subdir))
	if err != nil {
		// Directory-not-found, unlike a file miss, is surfaced to the
		// caller untranslated apart from the uniform wrapping.
		return nil, fmt.Errorf("resource directory %s: %w", subdir, fs.ErrNotExist)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ext) {
			names = append(names, path.Join(subdir, e.Name()))
		}
	}
	return names, nil
}

func (t treeLocation) ReadText() (string, error) {
	raw, err := t.ReadBytes()
	return string(raw), err
}

func (t treeLocation) ReadBytes() ([]byte, error) {
	raw, err := fs.ReadFile(t.fsys, t.rel)
	if err != nil {
		// The zip layer reports misses with a generic key-lookup error
		// rather than fs.ErrNotExist. Normalize both to not-found here and
		// only here, so the translation can go away once the archive layer
		// is fixed.
		var keyErr *bundle.KeyError
		if errors.As(err, &keyErr) || errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(t.rel)
		}
		return nil, err
	}
	return raw, nil
}

func (t treeLocation) String() string {
	return fmt.Sprintf("%s!%s", t.desc, t.rel)
}
