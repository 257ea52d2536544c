// Copyright (c) 2026 The resctl authors.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

// Renders docs/commands/*.md into:
//   - docs/man/share/man1/resctl-<cmd>.1 (md2man over the full markdown)
//   - docs/tldr/resctl-<cmd>.md (short description + Quick examples bullets)

var (
	h1Re      = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	exampleRe = regexp.MustCompile("(?m)^-\\s+(.+):\\s*\\n+`([^`]+)`")
)

func main() {
	var repoRoot string
	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating output dir: %v", err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		fatalf("reading commands dir %s: %v", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		cmd := strings.TrimSuffix(e.Name(), ".md")
		raw, err := os.ReadFile(filepath.Join(commandsDir, e.Name()))
		if err != nil {
			fatalf("reading %s: %v", e.Name(), err)
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("resctl-%s.1", cmd))
		if err := writeIfChanged(manPath, md2man.Render(raw)); err != nil {
			fatalf("writing man page for %s: %v", cmd, err)
		}

		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("resctl-%s.md", cmd))
		if err := writeIfChanged(tldrPath, []byte(buildTLDR(cmd, string(raw)))); err != nil {
			fatalf("writing TLDR for %s: %v", cmd, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no command markdown found under %s", commandsDir)
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeIfChanged(path string, data []byte) error {
	old, err := os.ReadFile(path)
	if err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(data)) {
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}

// buildTLDR assembles a tldr page from the doc's title line and the
// "- description:\n`command`" bullets under its Quick examples section.
func buildTLDR(cmd, md string) string {
	title := "resctl " + cmd
	if m := h1Re.FindStringSubmatch(md); m != nil {
		title = strings.TrimSpace(m[1])
	}

	var b strings.Builder
	b.WriteString("# resctl-" + cmd + "\n\n")
	b.WriteString("> " + title + "\n")
	b.WriteString("> More information: https://github.com/resctl/resctlgo.\n\n")

	examples := exampleRe.FindAllStringSubmatch(md, -1)
	if len(examples) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`resctl " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range examples {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex[1]) + ":\n\n")
		b.WriteString("`" + strings.Join(strings.Fields(ex[2]), " ") + "`\n")
	}
	return b.String()
}
