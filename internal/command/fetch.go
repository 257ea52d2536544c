// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	awsx "github.com/resctl/resctlgo/internal/aws"
	"github.com/resctl/resctlgo/internal/cacheutil"
	"github.com/resctl/resctlgo/internal/config"
	"github.com/resctl/resctlgo/internal/fetch"
	"github.com/resctl/resctlgo/internal/meta"
)

// FetchCommandAction downloads a published bundle from S3 into the local
// cache and prints its path, suitable for --bundle on the other commands.
func FetchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "fetch") {
		return nil
	}

	cleanHours, _ := config.GetInt("fetch.clean-hours", 0)
	if cache, err := cacheutil.Open(); err == nil {
		if err := cache.Purge(time.Duration(cleanHours) * time.Hour); err != nil {
			log.Warnf("failed to purge cache: %v", err)
		}
	}

	var opts []awsx.Option
	if region := cmd.String("region"); region != "" {
		opts = append(opts, awsx.WithRegion(region))
	}
	if profile := cmd.String("profile"); profile != "" {
		opts = append(opts, awsx.WithProfile(profile))
	}

	path, err := fetch.Bundle(ctx, cmd.String("s3-bucket"), cmd.String("s3-key"), opts...)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// FetchCommandBuilder constructs the cli.Command for "fetch".
func FetchCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "fetch a published bundle from S3 into the cache",
		UsageText: `resctl fetch --s3-bucket <bucket> --s3-key <key> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "s3-bucket",
				Usage:    "bucket holding the published bundle",
				Required: true,
				Sources: cli.NewValueSourceChain(
					yaml.YAML("fetch.s3-bucket", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
			&cli.StringFlag{
				Name:     "s3-key",
				Usage:    "object key of the published bundle",
				Required: true,
				Sources: cli.NewValueSourceChain(
					yaml.YAML("fetch.s3-key", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
			&cli.StringFlag{
				Name:  "region",
				Usage: "AWS region override",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("AWS_REGION"),
					yaml.YAML("fetch.region", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "AWS shared config profile",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("fetch.profile", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
			tldrFlag,
		}, NewGlobalFlags("fetch")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := FetchCommandValidator(ctx, c); err != nil {
				return err
			}
			return FetchCommandAction(ctx, c)
		},
	}
}

// FetchCommandValidator performs validation for "fetch" and delegates shared
// checks to GlobalFlagsValidator.
func FetchCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
