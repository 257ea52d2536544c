// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

// Package differ compares the manifests of two resource bundles.
package differ

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Manifests compares two manifest.json documents and renders the changes in
// ASCII diff form. An empty string means the manifests are equivalent.
func Manifests(left, right []byte, color bool) (string, error) {
	diff, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", fmt.Errorf("failed to compare manifests: %w", err)
	}

	if !diff.Modified() {
		return "", nil
	}

	var leftDoc map[string]interface{}
	if err := json.Unmarshal(left, &leftDoc); err != nil {
		return "", fmt.Errorf("failed to parse manifest: %w", err)
	}

	f := formatter.NewAsciiFormatter(leftDoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	out, err := f.Format(diff)
	if err != nil {
		return "", fmt.Errorf("failed to format diff: %w", err)
	}
	return out, nil
}
