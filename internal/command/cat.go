// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/resctl/resctlgo/internal/meta"
)

// CatCommandAction prints a resource's contents as UTF-8 text.
func CatCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "cat") {
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

	if cmd.Bool("preload") {
		svc.Preload()
		log.Debugf("cache holds %d resources", len(svc.CachedNames()))
	}

	text, err := svc.ReadText(name)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, text)
	return nil
}

// CatCommandBuilder constructs the cli.Command for "cat".
func CatCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "print a resource as text",
		UsageText: `resctl cat <name> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "preload",
				Usage:       "run the preload pass before reading",
				HideDefault: true,
			},
			tldrFlag,
		}, NewGlobalFlags("cat")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := CatCommandValidator(ctx, c); err != nil {
				return err
			}
			return CatCommandAction(ctx, c)
		},
	}
}

// CatCommandValidator performs validation for "cat" and delegates shared
// checks to GlobalFlagsValidator.
func CatCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
