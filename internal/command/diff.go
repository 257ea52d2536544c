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

	"github.com/resctl/resctlgo/internal/bundle"
	"github.com/resctl/resctlgo/internal/differ"
	"github.com/resctl/resctlgo/internal/meta"
	"github.com/resctl/resctlgo/internal/resource"
)

// DiffCommandAction compares the manifests of two bundles.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return errors.New("two bundle paths required")
	}

	left, err := readManifest(args[0])
	if err != nil {
		return err
	}
	right, err := readManifest(args[1])
	if err != nil {
		return err
	}

	out, err := differ.Manifests(left, right, cmd.Bool("color"))
	if err != nil {
		return err
	}

	if out == "" {
		log.Infof("manifests are identical")
		return nil
	}

	fmt.Fprint(os.Stdout, out)
	return nil
}

func readManifest(path string) ([]byte, error) {
	b, err := bundle.Open(path)
	if err != nil {
		return nil, err
	}
	loc := resource.NewTreeLocation(b, "bundle:"+path)
	raw, err := loc.Resolve(bundle.ManifestName).ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", path, err)
	}
	return raw, nil
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "diff the manifests of two bundles",
		UsageText: `resctl diff <bundleA> <bundleB> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags("diff")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := DiffCommandValidator(ctx, c); err != nil {
				return err
			}
			return DiffCommandAction(ctx, c)
		},
	}
}

// DiffCommandValidator performs validation for "diff" and delegates shared
// checks to GlobalFlagsValidator.
func DiffCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
