// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/resctl/resctlgo/internal/config"
)

// RootSpec describes where the resource root lives for this invocation.
// Root is a loose directory tree; Bundle is a packaged zip. At most one of
// the two is set; when both are empty the embedded assets are used.
type RootSpec struct {
	Root   string
	Bundle string
}

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	RootSpec
	StartingDir string
}
