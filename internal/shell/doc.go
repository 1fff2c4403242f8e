// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell runs external commands and reports their failures.
//
// A Command is either a shell line (Line), interpreted by /bin/sh, or an
// argument vector (Argv), executed directly with no shell in between. Lines
// that use pipes or process substitution run under bash with pipefail set,
// so a failure anywhere in a pipeline fails the whole command.
//
// Run spawns one child process, merges its stdout and stderr into a single
// pipe and reads it line by line while the child runs. Only the last 100
// non-empty lines are kept; when the child exits nonzero they are attached
// to the returned *CommandFailedError. Cancelling the context kills the
// child.
package shell
