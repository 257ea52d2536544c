// Copyright (c) 2026 The resctl authors.
// SPDX-License-Identifier: MIT

// Package cacheutil manages the on-disk cache where fetched bundles live.
package cacheutil

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
)

// ErrDisabled is returned by Open when RESCTL_CACHE turns caching off or no
// base directory can be resolved.
var ErrDisabled = errors.New("cache disabled")

// Cache is a content store rooted at a single base directory. Keys are
// clear-text strings (bucket/key@etag for bundles) hashed into filenames, so
// any characters are safe.
type Cache struct {
	base string
}

// Open resolves the cache base directory and creates it. The base is
// RESCTL_CACHE_DIR when set, otherwise os.UserCacheDir()/resctl. Returns
// ErrDisabled when RESCTL_CACHE is "0"/"false" or no base resolves.
func Open() (*Cache, error) {
	if v, ok := os.LookupEnv("RESCTL_CACHE"); ok && (v == "0" || v == "false") {
		return nil, ErrDisabled
	}

	base := os.Getenv("RESCTL_CACHE_DIR")
	if base == "" {
		dir, err := os.UserCacheDir()
		if err != nil || dir == "" {
			return nil, ErrDisabled
		}
		base = filepath.Join(dir, "resctl")
	}

	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", base, err)
	}
	return &Cache{base: base}, nil
}

// Path returns where the entry for key lives (or would live) under subdir.
func (c *Cache) Path(subdir, key string) string {
	return filepath.Join(c.base, subdir, encodeKey(key))
}

// Read returns the cached bytes for key, or false on a miss.
func (c *Cache) Read(subdir, key string) ([]byte, bool) {
	raw, err := os.ReadFile(c.Path(subdir, key))
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Write stores data under subdir/key and returns the entry's path.
func (c *Cache) Write(subdir, key string, data []byte) (string, error) {
	dir := filepath.Join(c.base, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	p := filepath.Join(dir, encodeKey(key))
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write cache entry: %w", err)
	}
	return p, nil
}

// Purge removes entries older than maxAge. maxAge <= 0 is a no-op.
func (c *Cache) Purge(maxAge time.Duration) error {
	if maxAge <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	err := filepath.Walk(c.base, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			} else {
				log.Debugf("removed cache file %s", path)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(k string) string {
	h := md5.Sum([]byte(k))
	return hex.EncodeToString(h[:])
}
