// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

// Package command builds the resctl CLI: one Builder/Action/Validator triple
// per subcommand, plus the flags and helpers they share.
package command
