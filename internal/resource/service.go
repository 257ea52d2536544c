// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/resctl/resctlgo/assets"
	"github.com/resctl/resctlgo/internal/bundle"
)

// preloadSets are the subdir/extension pairs Preload pulls into the cache.
var preloadSets = []struct {
	subdir string
	ext    string
}{
	{"html", ".html"},
	{"javascript", ".js"},
	{"javascript/quirks", ".js"},
}

// Service reads resources from a single root Location and owns the preload
// cache. Construct one per process; call Preload before any concurrent
// readers exist. The cache is written only by Preload and read by ReadText,
// and cached values are idempotent functions of the name, so redundant
// Preload calls are harmless.
type Service struct {
	root  Location
	cache map[string]string
}

// NewService wraps a root Location.
func NewService(root Location) *Service {
	return &Service{
		root:  root,
		cache: map[string]string{},
	}
}

// RootLocation picks the resource root for this process. Frozen executables
// resolve next to the binary; otherwise an explicit loose tree or bundle
// wins, and the embedded assets are the fallback.
func RootLocation(rootDir, bundlePath string) (Location, error) {
	if Frozen() {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate executable: %w", err)
		}
		return NewDirLocation(filepath.Dir(exe)), nil
	}

	if rootDir != "" {
		return NewDirLocation(rootDir), nil
	}

	if bundlePath != "" {
		b, err := bundle.Open(bundlePath)
		if err != nil {
			return nil, err
		}
		return NewTreeLocation(b, "bundle:"+bundlePath), nil
	}

	return NewTreeLocation(assets.FS, "embedded"), nil
}

// Root returns the root Location the service reads from.
func (s *Service) Root() Location {
	return s.root
}

// Resolve maps a relative resource name to its Location. Absolute names and
// names containing a parent-directory segment are programming errors and
// panic; this is a precondition, not a recoverable failure.
func (s *Service) Resolve(name string) Location {
	validateName(name)
	return s.root.Resolve(name)
}

// Enumerate lists resources directly under subdir whose name ends in ext.
// ext must be a dotted extension without wildcards (precondition).
func (s *Service) Enumerate(subdir, ext string) ([]string, error) {
	validateName(subdir)
	validateExt(ext)
	return s.root.Glob(subdir, ext)
}

// Preload loads the fixed resource sets into the cache. It never fails:
// missing subdirectories simply leave the cache unpopulated and later reads
// fall through to direct resolution.
func (s *Service) Preload() {
	for _, set := range preloadSets {
		names, err := s.root.Glob(set.subdir, set.ext)
		if err != nil {
			log.Debugf("preload: skipping %s: %v", set.subdir, err)
			continue
		}
		for _, name := range names {
			text, err := s.Resolve(name).ReadText()
			if err != nil {
				log.Warnf("preload: failed to read %s: %v", name, err)
				continue
			}
			s.cache[name] = text
		}
	}
	log.Debugf("preload: %d resources cached", len(s.cache))
}

// ReadText returns the resource contents as UTF-8 text, served from the
// cache when Preload has seen the name. Missing resources fail with the
// normalized not-found error.
func (s *Service) ReadText(name string) (string, error) {
	if text, ok := s.cache[name]; ok {
		return text, nil
	}
	return s.Resolve(name).ReadText()
}

// ReadBytes returns the raw resource contents. It never consults or
// populates the cache.
func (s *Service) ReadBytes(name string) ([]byte, error) {
	return s.Resolve(name).ReadBytes()
}

// CachedNames returns the sorted names currently in the preload cache.
func (s *Service) CachedNames() []string {
	names := make([]string, 0, len(s.cache))
	for name := range s.cache {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateName(name string) {
	if path.IsAbs(name) {
		panic(fmt.Sprintf("resource name must be relative: %q", name))
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			panic(fmt.Sprintf("resource name must not contain parent segments: %q", name))
		}
	}
}

func validateExt(ext string) {
	if !strings.HasPrefix(ext, ".") {
		panic(fmt.Sprintf("extension must start with a dot: %q", ext))
	}
	if strings.Contains(ext, "*") {
		panic(fmt.Sprintf("extension must not contain a wildcard: %q", ext))
	}
}
