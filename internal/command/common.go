// Copyright (c) 2026 The resctl authors.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/resctl/resctlgo/internal/meta"
	"github.com/resctl/resctlgo/internal/resource"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr resctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "resctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewService builds the resource service for this invocation. Flags win over
// the environment/config values captured in Meta.
func NewService(cmd *cli.Command) (*resource.Service, error) {
	m := GetMeta(cmd)

	rootDir := cmd.String("root")
	if rootDir == "" {
		rootDir = m.Root
	}
	bundlePath := cmd.String("bundle")
	if bundlePath == "" {
		bundlePath = m.Bundle
	}

	root, err := resource.RootLocation(rootDir, bundlePath)
	if err != nil {
		return nil, err
	}
	log.Debugf("resource root: %s", root)

	return resource.NewService(root), nil
}
