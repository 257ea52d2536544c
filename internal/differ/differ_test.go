// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestsIdentical(t *testing.T) {
	left := []byte(`{"name":"demo","version":"1.0.0"}`)
	right := []byte(`{"version":"1.0.0","name":"demo"}`)

	out, err := Manifests(left, right, false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestManifestsModified(t *testing.T) {
	left := []byte(`{"name":"demo","version":"1.0.0","resources":{"html":2}}`)
	right := []byte(`{"name":"demo","version":"1.1.0","resources":{"html":3}}`)

	out, err := Manifests(left, right, false)
	require.NoError(t, err)
	assert.Contains(t, out, "1.0.0")
	assert.Contains(t, out, "1.1.0")
}

func TestManifestsAddedKey(t *testing.T) {
	left := []byte(`{"name":"demo"}`)
	right := []byte(`{"name":"demo","channel":"stable"}`)

	out, err := Manifests(left, right, false)
	require.NoError(t, err)
	assert.Contains(t, out, "channel")
}

func TestManifestsInvalidJSON(t *testing.T) {
	_, err := Manifests([]byte(`{`), []byte(`{}`), false)
	assert.Error(t, err)
}
