// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

// Package resource locates and reads bundled application resources (HTML,
// JavaScript) by logical POSIX-style name, across loose source trees,
// packaged zip bundles, embedded assets, and frozen executable layouts.
package resource
