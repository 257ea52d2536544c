// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

// Package fetch downloads published resource bundles from S3 into the local
// cache so they can be opened like any other bundle.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/resctl/resctlgo/internal/aws"
	"github.com/resctl/resctlgo/internal/cacheutil"
)

// cacheSubdir is where fetched bundles live beneath the cache base.
const cacheSubdir = "bundles"

// Bundle downloads s3://bucket/key into the cache and returns the local
// path. Entries are keyed by bucket/key@ETag, so an unchanged object is
// served from the cache without a second download. With caching disabled
// the bundle lands in a temp file instead.
func Bundle(ctx context.Context, bucket, key string, opts ...awsx.Option) (string, error) {
	cfg, err := awsx.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := awsx.NewS3(cfg)

	head, err := client.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return "", fmt.Errorf("failed to stat s3://%s/%s: %w", bucket, key, err)
	}

	cacheKey := fmt.Sprintf("%s/%s", bucket, key)
	if head.ETag != nil {
		cacheKey = fmt.Sprintf("%s@%s", cacheKey, *head.ETag)
	}

	cache, err := cacheutil.Open()
	if err != nil && !errors.Is(err, cacheutil.ErrDisabled) {
		return "", err
	}

	if cache != nil {
		if _, ok := cache.Read(cacheSubdir, cacheKey); ok {
			path := cache.Path(cacheSubdir, cacheKey)
			log.Debugf("bundle cache hit: %s -> %s", cacheKey, path)
			return path, nil
		}
	}

	obj, err := client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer obj.Body.Close()

	raw, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}

	if cache == nil {
		return writeTemp(raw)
	}

	path, err := cache.Write(cacheSubdir, cacheKey, raw)
	if err != nil {
		return "", err
	}
	log.Debugf("fetched bundle %s (%d bytes) -> %s", cacheKey, len(raw), path)
	return path, nil
}

func writeTemp(raw []byte) (string, error) {
	f, err := os.CreateTemp("", "resctl-bundle-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp bundle: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(raw); err != nil {
		return "", fmt.Errorf("failed to write temp bundle: %w", err)
	}
	return f.Name(), nil
}
