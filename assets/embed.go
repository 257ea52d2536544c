// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

// Package assets holds the default resource tree compiled into the binary.
// It is the resource root used when no loose tree or bundle is configured.
package assets

import "embed"

//go:embed html javascript manifest.json
var FS embed.FS
