// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/resctl/resctlgo/internal/bundle"
	"github.com/resctl/resctlgo/internal/meta"
	"github.com/resctl/resctlgo/internal/output"
	"github.com/resctl/resctlgo/internal/resource"
)

// InfoCommandAction reports where resources are being read from and what
// the bundle manifest declares. --query evaluates a gjson path against the
// manifest and prints just that value.
func InfoCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "info") {
		return nil
	}

	svc, err := NewService(cmd)
	if err != nil {
		return err
	}

	var man bundle.Manifest
	raw, err := svc.ReadBytes(bundle.ManifestName)
	if err != nil {
		log.Debugf("no manifest: %v", err)
	} else {
		man = bundle.ParseManifest(raw)
	}

	if query := cmd.String("query"); query != "" {
		result := man.Query(query)
		if !result.Exists() {
			return fmt.Errorf("no manifest value at %q", query)
		}
		fmt.Println(result.String())
		return nil
	}

	// Format the bool here so a false doesn't render as an empty cell.
	resultSet := []map[string]interface{}{{
		"root":    svc.Root().String(),
		"frozen":  strconv.FormatBool(resource.Frozen()),
		"name":    man.Name(),
		"version": man.Version(),
	}}

	output.Spit(resultSet, []string{"root", "frozen", "name", "version"}, cmd, os.Stdout)

	return nil
}

// InfoCommandBuilder constructs the cli.Command for "info".
func InfoCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "show resource root and manifest info",
		UsageText: `resctl info [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			queryFlag,
			tldrFlag,
		}, NewGlobalFlags("info")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := InfoCommandValidator(ctx, c); err != nil {
				return err
			}
			return InfoCommandAction(ctx, c)
		},
	}
}

// InfoCommandValidator performs validation for "info" and delegates shared
// checks to GlobalFlagsValidator.
func InfoCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
