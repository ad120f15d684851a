// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the notepad binary.
//
// The central type is [Command]: a named command with optional nested
// [Command.Subcommands], a [pflag.FlagSet] factory, and a Run function.
// The tree is assembled in cmd/notepad and dispatched with
// [Command.Execute], which parses flags, routes subcommands, and prints
// help with examples.
//
// An unknown command or flag is answered with the closest known name
// by Levenshtein distance (at most 3), from suggest.go.
//
// Commands report failures as [ToolError] values carrying an
// [ErrorCategory]; [ExitCode] maps a returned error to the process exit
// status. [ExitError] exits non-zero without printing anything more.
package cli
