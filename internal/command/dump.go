// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/resctl/resctlgo/internal/meta"
)

// DumpCommandAction writes a resource's raw bytes to stdout. Unlike "cat"
// this always performs a fresh read; the preload cache is never consulted.
func DumpCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "dump") {
		return nil
	}

	name := cmd.Args().First()
	if name == "" {
		return errors.New("resource name required")
	}

	svc, err := NewService(cmd)
	if err != nil {
		return err
	}

	raw, err := svc.ReadBytes(name)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(raw)
	return err
}

// DumpCommandBuilder constructs the cli.Command for "dump".
func DumpCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "write a resource's raw bytes to stdout",
		UsageText: `resctl dump <name> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags("dump")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := DumpCommandValidator(ctx, c); err != nil {
				return err
			}
			return DumpCommandAction(ctx, c)
		},
	}
}

// DumpCommandValidator performs validation for "dump" and delegates shared
// checks to GlobalFlagsValidator.
func DumpCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
