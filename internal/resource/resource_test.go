// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package resource

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

	"github.com/resctl/resctlgo/internal/bundle"
)

// fixture is the file set both root kinds are built from.
var fixture = map[string]string{
	"html/a.html":               "<html>a</html>",
	"html/b.html":               "<html>b</html>",
	"html/c.txt":                "not html",
	"javascript/console.js":     "console.log('hi');",
	"javascript/quirks/shim.js": "globalThis = this;",
	"manifest.json":             `{"name":"fixture","version":"0.1.0"}`,
}

// dirRoot lays the fixture out as a loose tree under t.TempDir.
func dirRoot(t *testing.T) Location {
	t.Helper()
	root := t.TempDir()
	for name, content := range fixture {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return NewDirLocation(root)
}

// zipRoot packs the fixture into an in-memory zip bundle.
func zipRoot(t *testing.T) Location {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range fixture {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	b, err := bundle.New(buf.Bytes(), "fixture.zip")
	require.NoError(t, err)
	return NewTreeLocation(b, "bundle:fixture.zip")
}

// roots runs a subtest against each root kind.
func roots(t *testing.T, fn func(t *testing.T, root Location)) {
	t.Helper()
	t.Run("dir", func(t *testing.T) { fn(t, dirRoot(t)) })
	t.Run("zip", func(t *testing.T) { fn(t, zipRoot(t)) })
}

func TestEnumerate(t *testing.T) {
	tests := []struct {
		name   string
		subdir string
		ext    string
		want   []string
	}{
		{
			name:   "html filter excludes other extensions",
			subdir: "html",
			ext:    ".html",
			want:   []string{"html/a.html", "html/b.html"},
		},
		{
			name:   "txt filter",
			subdir: "html",
			ext:    ".txt",
			want:   []string{"html/c.txt"},
		},
		{
			name:   "nested subdir",
			subdir: "javascript/quirks",
			ext:    ".js",
			want:   []string{"javascript/quirks/shim.js"},
		},
		{
			name:   "no matches",
			subdir: "html",
			ext:    ".css",
			want:   []string{},
		},
	}

	roots(t, func(t *testing.T, root Location) {
		svc := NewService(root)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := svc.Enumerate(tt.subdir, tt.ext)
				assert.NoError(t, err)
				assert.ElementsMatch(t, tt.want, got)
			})
		}
	})
}

func TestEnumerateShallow(t *testing.T) {
	// Enumerating javascript must not descend into quirks.
	roots(t, func(t *testing.T, root Location) {
		got, err := NewService(root).Enumerate("javascript", ".js")
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"javascript/console.js"}, got)
	})
}

// The two kinds disagree on a missing subdirectory on purpose: the loose
// tree reports an empty result, the packaged tree reports an error.
func TestGlobMissingSubdirDir(t *testing.T) {
	got, err := NewService(dirRoot(t)).Enumerate("nosuchdir", ".html")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestGlobMissingSubdirTree(t *testing.T) {
	_, err := NewService(zipRoot(t)).Enumerate("nosuchdir", ".html")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocationInspection(t *testing.T) {
	roots(t, func(t *testing.T, root Location) {
		html := root.Resolve("html")
		assert.True(t, html.Exists())
		assert.True(t, html.IsDir())

		names, err := html.List()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.html", "b.html", "c.txt"}, names)

		file := root.Resolve("html/a.html")
		assert.True(t, file.Exists())
		assert.False(t, file.IsDir())

		gone := root.Resolve("html/gone.html")
		assert.False(t, gone.Exists())
		assert.False(t, gone.IsDir())
		_, err = gone.List()
		assert.Error(t, err)
	})
}

func TestReadText(t *testing.T) {
	roots(t, func(t *testing.T, root Location) {
		svc := NewService(root)
		text, err := svc.ReadText("html/a.html")
		require.NoError(t, err)
		assert.Equal(t, fixture["html/a.html"], text)
	})
}

func TestReadBytes(t *testing.T) {
	roots(t, func(t *testing.T, root Location) {
		svc := NewService(root)
		raw, err := svc.ReadBytes("javascript/console.js")
		require.NoError(t, err)
		assert.Equal(t, []byte(fixture["javascript/console.js"]), raw)
	})
}

func TestNotFoundNormalized(t *testing.T) {
	roots(t, func(t *testing.T, root Location) {
		svc := NewService(root)

		_, err := svc.ReadText("html/nope.html")
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)

		_, err = svc.ReadBytes("html/nope.html")
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)

		// The archive key-lookup error must never leak past the read.
		var keyErr *bundle.KeyError
		assert.False(t, errors.As(err, &keyErr))
	})
}

func TestPreloadServesReads(t *testing.T) {
	roots(t, func(t *testing.T, root Location) {
		svc := NewService(root)

		before, err := svc.ReadText("html/a.html")
		require.NoError(t, err)

		svc.Preload()
		after, err := svc.ReadText("html/a.html")
		require.NoError(t, err)
		assert.Equal(t, before, after)

		assert.Equal(t, []string{
			"html/a.html",
			"html/b.html",
			"javascript/console.js",
			"javascript/quirks/shim.js",
		}, svc.CachedNames())
	})
}

func TestPreloadTolerantOfMissingSets(t *testing.T) {
	// A root with none of the standard subdirs preloads to an empty cache
	// without failing, on both kinds.
	t.Run("dir", func(t *testing.T) {
		svc := NewService(NewDirLocation(t.TempDir()))
		svc.Preload()
		assert.Empty(t, svc.CachedNames())
	})
	t.Run("zip", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("other/readme.txt")
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		b, err := bundle.New(buf.Bytes(), "sparse.zip")
		require.NoError(t, err)
		svc := NewService(NewTreeLocation(b, "bundle:sparse.zip"))
		svc.Preload()
		assert.Empty(t, svc.CachedNames())
	})
}

// countingLocation counts reads that reach the underlying root, shared
// across Resolve so the Service's own resolution is observed.
type countingLocation struct {
	Location
	reads *int
}

func (c countingLocation) Resolve(name string) Location {
	return countingLocation{Location: c.Location.Resolve(name), reads: c.reads}
}

func (c countingLocation) ReadText() (string, error) {
	*c.reads++
	return c.Location.ReadText()
}

func (c countingLocation) ReadBytes() ([]byte, error) {
	*c.reads++
	return c.Location.ReadBytes()
}

func TestReadTextUsesCacheReadBytesDoesNot(t *testing.T) {
	var reads int
	svc := NewService(countingLocation{Location: dirRoot(t), reads: &reads})
	svc.Preload()

	preloadReads := reads
	assert.Positive(t, preloadReads)

	// Cached text reads never touch the root.
	_, err := svc.ReadText("html/a.html")
	require.NoError(t, err)
	_, err = svc.ReadText("html/a.html")
	require.NoError(t, err)
	assert.Equal(t, preloadReads, reads)

	// Raw reads always do, even for cached names.
	_, err = svc.ReadBytes("html/a.html")
	require.NoError(t, err)
	_, err = svc.ReadBytes("html/a.html")
	require.NoError(t, err)
	assert.Equal(t, preloadReads+2, reads)
}

func TestReadBytesSeesChanges(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "html", "live.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("v1"), 0o644))

	svc := NewService(NewDirLocation(root))
	raw, err := svc.ReadBytes("html/live.html")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), raw)

	require.NoError(t, os.WriteFile(p, []byte("v2"), 0o644))
	raw, err = svc.ReadBytes("html/live.html")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), raw)
}

func TestValidateName(t *testing.T) {
	svc := NewService(dirRoot(t))

	assert.PanicsWithValue(t, `resource name must be relative: "/etc/passwd"`, func() {
		svc.Resolve("/etc/passwd")
	})
	assert.PanicsWithValue(t, `resource name must not contain parent segments: "html/../secret"`, func() {
		svc.Resolve("html/../secret")
	})
	assert.Panics(t, func() {
		_, _ = svc.Enumerate("../outside", ".html")
	})

	// Dots inside a segment are fine.
	assert.NotPanics(t, func() {
		svc.Resolve("html/a..b.html")
	})
}

func TestValidateExt(t *testing.T) {
	svc := NewService(dirRoot(t))

	assert.PanicsWithValue(t, `extension must start with a dot: "html"`, func() {
		_, _ = svc.Enumerate("html", "html")
	})
	assert.PanicsWithValue(t, `extension must not contain a wildcard: ".htm*"`, func() {
		_, _ = svc.Enumerate("html", ".htm*")
	})
}

func TestResolveString(t *testing.T) {
	loc := NewDirLocation(string(filepath.Separator) + "base").Resolve("html").Resolve("a.html")
	assert.Contains(t, loc.String(), filepath.Join("base", "html", "a.html"))

	tree := NewTreeLocation(os.DirFS("."), "embedded").Resolve("html/a.html")
	assert.Equal(t, "embedded!html/a.html", tree.String())
}

func TestFrozen(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{name: "env 1", env: "1", want: true},
		{name: "env true", env: "true", want: true},
		{name: "env 0", env: "0", want: false},
		{name: "env false", env: "false", want: false},
		{name: "env empty", env: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RESCTL_FROZEN", tt.env)
			assert.Equal(t, tt.want, Frozen())
		})
	}
}

func TestRootLocation(t *testing.T) {
	t.Setenv("RESCTL_FROZEN", "0")

	t.Run("explicit dir wins", func(t *testing.T) {
		dir := t.TempDir()
		loc, err := RootLocation(dir, "")
		require.NoError(t, err)
		assert.Contains(t, loc.String(), dir)
	})

	t.Run("bundle", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("manifest.json")
		require.NoError(t, err)
		_, err = w.Write([]byte("{}"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		path := filepath.Join(t.TempDir(), "b.zip")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

		loc, err := RootLocation("", path)
		require.NoError(t, err)
		assert.Contains(t, loc.String(), "bundle:"+path)
	})

	t.Run("missing bundle errors", func(t *testing.T) {
		_, err := RootLocation("", filepath.Join(t.TempDir(), "absent.zip"))
		assert.Error(t, err)
	})

	t.Run("embedded fallback", func(t *testing.T) {
		loc, err := RootLocation("", "")
		require.NoError(t, err)
		assert.Equal(t, "embedded!.", loc.String())
		raw, err := loc.Resolve("manifest.json").ReadBytes()
		require.NoError(t, err)
		assert.NotEmpty(t, raw)
	})

	t.Run("frozen resolves beside executable", func(t *testing.T) {
		t.Setenv("RESCTL_FROZEN", "1")
		exe, err := os.Executable()
		require.NoError(t, err)
		loc, err := RootLocation("", "")
		require.NoError(t, err)
		assert.Contains(t, loc.String(), filepath.Dir(exe))
	})
}
