// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package version

// Version is the resctl release string. It is overridden at build time via
// -ldflags "-X github.com/resctl/resctlgo/internal/version.Version=...".
var Version = "dev"
