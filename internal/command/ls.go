// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/resctl/resctlgo/internal/meta"
	"github.com/resctl/resctlgo/internal/output"
)

// LsCommandAction lists resources directly under a subdirectory of the
// resource root, filtered by extension.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "ls") {
		return nil
	}

	subdir := cmd.Args().First()
	if subdir == "" {
		subdir = "html"
	}
	ext := cmd.String("ext")

	svc, err := NewService(cmd)
	if err != nil {
		return err
	}

	names, err := svc.Enumerate(subdir, ext)
	if err != nil {
		return err
	}
	log.Debugf("enumerated %d resources under %s", len(names), subdir)

	resultSet := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		row := map[string]interface{}{
			"name":     name,
			"location": svc.Resolve(name).String(),
		}
		if raw, err := svc.ReadBytes(name); err == nil {
			row["size"] = humanize.Bytes(uint64(len(raw)))
		}
		resultSet = append(resultSet, row)
	}

	output.Spit(resultSet, []string{"name", "size", "location"}, cmd, os.Stdout)

	return nil
}

// LsCommandBuilder constructs the cli.Command for "ls".
func LsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list resources",
		UsageText: `resctl ls [subdir] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "ext",
				Aliases: []string{"e"},
				Usage:   "dotted extension to match (no wildcards)",
				Value:   ".html",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("ls.ext", altsrc.StringSourcer(meta.Config.Source)),
				),
				Validator: func(value string) error {
					return FlagValidators(value, ExtensionValidator)
				},
			},
			tldrFlag,
		}, NewGlobalFlags("ls")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := LsCommandValidator(ctx, c); err != nil {
				return err
			}
			return LsCommandAction(ctx, c)
		},
	}
}

// LsCommandValidator performs validation for "ls" and delegates shared
// checks to GlobalFlagsValidator.
func LsCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
