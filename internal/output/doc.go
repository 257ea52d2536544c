// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

// Package output renders command result sets as text tables, JSON, or YAML
// according to the common output flags.
package output
