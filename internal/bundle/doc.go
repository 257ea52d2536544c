// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

// Package bundle reads packaged resource archives (zip) and exposes them as
// traversable filesystems, plus helpers for the bundle manifest document.
package bundle
