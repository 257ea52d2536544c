// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package bundle

import (
	"archive/zip"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	raw := buildZip(t, map[string]string{
		"manifest.json": `{"name":"demo","version":"2.0.0"}`,
		"html/x.html":   "<x/>",
	})

	b, err := New(raw, "demo.zip")
	require.NoError(t, err)
	assert.Equal(t, "demo.zip", b.Name())

	got, err := fs.ReadFile(b, "html/x.html")
	require.NoError(t, err)
	assert.Equal(t, "<x/>", string(got))
}

func TestNewRejectsGarbage(t *testing.T) {
	_, err := New([]byte("not a zip"), "junk.zip")
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	raw := buildZip(t, map[string]string{ManifestName: "{}"})
	path := filepath.Join(t.TempDir(), "b.zip")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	b, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, b.Name())

	_, err = Open(filepath.Join(t.TempDir(), "absent.zip"))
	assert.Error(t, err)
}

func TestMissingEntryIsKeyError(t *testing.T) {
	b, err := New(buildZip(t, map[string]string{"a.txt": "a"}), "k.zip")
	require.NoError(t, err)

	_, err = b.Open("nope.txt")
	require.Error(t, err)

	var keyErr *KeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, "nope.txt", keyErr.Key)
	assert.Contains(t, keyErr.Error(), "nope.txt")
}

func TestReadDir(t *testing.T) {
	b, err := New(buildZip(t, map[string]string{
		"html/a.html": "a",
		"html/b.html": "b",
		"js/c.js":     "c",
	}), "d.zip")
	require.NoError(t, err)

	entries, err := fs.ReadDir(b, "html")
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"a.html", "b.html"}, names)

	_, err = fs.ReadDir(b, "nosuchdir")
	assert.Error(t, err)
}

func TestManifest(t *testing.T) {
	m := ParseManifest([]byte(`{"name":"demo","version":"2.0.0","resources":{"html":3}}`))

	assert.Equal(t, "demo", m.Name())
	assert.Equal(t, "2.0.0", m.Version())
	assert.Equal(t, int64(3), m.Query("resources.html").Int())
	assert.False(t, m.Query("resources.css").Exists())
	assert.JSONEq(t, `{"name":"demo","version":"2.0.0","resources":{"html":3}}`, string(m.Raw()))
}
