// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/resctl/resctlgo/internal/meta"
	"github.com/resctl/resctlgo/internal/output"
)

// PreloadCommandAction runs the preload pass and reports what ended up in
// the cache. Useful for verifying a tree or bundle before shipping it.
func PreloadCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "preload") {
		return nil
	}

	svc, err := NewService(cmd)
	if err != nil {
		return err
	}

	svc.Preload()

	names := svc.CachedNames()
	resultSet := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		text, err := svc.ReadText(name)
		if err != nil {
			continue
		}
		resultSet = append(resultSet, map[string]interface{}{
			"name": name,
			"size": humanize.Bytes(uint64(len(text))),
		})
	}

	output.Spit(resultSet, []string{"name", "size"}, cmd, os.Stdout)

	return nil
}

// PreloadCommandBuilder constructs the cli.Command for "preload".
func PreloadCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "preload",
		Usage:     "run the preload pass and report the cached resources",
		UsageText: `resctl preload [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags("preload")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := PreloadCommandValidator(ctx, c); err != nil {
				return err
			}
			return PreloadCommandAction(ctx, c)
		},
	}
}

// PreloadCommandValidator performs validation for "preload" and delegates
// shared checks to GlobalFlagsValidator.
func PreloadCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
