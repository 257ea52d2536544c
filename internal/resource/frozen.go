// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package resource

import "os"

// frozenBuild is stamped by the packaging tool when resources are laid out
// next to the executable instead of under the install root:
//
//	-ldflags "-X github.com/resctl/resctlgo/internal/resource.frozenBuild=1"
var frozenBuild string

// Frozen reports whether this process runs as a frozen executable. The
// RESCTL_FROZEN env variable overrides the build-time stamp.
func Frozen() bool {
	if v, ok := os.LookupEnv("RESCTL_FROZEN"); ok {
		return v != "" && v != "0" && v != "false"
	}
	return frozenBuild != "" && frozenBuild != "0"
}
