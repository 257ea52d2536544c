// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package bundle

import (
	"github.com/tidwall/gjson"
)

// ManifestName is the well-known manifest entry every bundle carries.
const ManifestName = "manifest.json"

// Manifest is the parsed (lazily queried) bundle manifest document.
type Manifest struct {
	raw []byte
}

// ParseManifest wraps raw manifest.json bytes for querying.
func ParseManifest(raw []byte) Manifest {
	return Manifest{raw: raw}
}

// Query evaluates a gjson path against the manifest.
func (m Manifest) Query(path string) gjson.Result {
	return gjson.GetBytes(m.raw, path)
}

// Name returns the bundle name declared in the manifest, or "".
func (m Manifest) Name() string {
	return m.Query("name").String()
}

// Version returns the bundle version declared in the manifest, or "".
func (m Manifest) Version() string {
	return m.Query("version").String()
}

// Raw returns the manifest bytes as read from the bundle.
func (m Manifest) Raw() []byte {
	return m.raw
}
