// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

// resctlgo is the main package for the resctl command line tool. It wires the
// CLI, delegates to internal packages, and serves as the entry point.
package main
