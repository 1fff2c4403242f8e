// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds process-wide state shared by the subcommands.
// The signal channel is created in main before the command tree runs.
package cmdstate

import (
	"io"
	"os"

	"github.com/matt-FFFFFF/koopa/internal/shell"
)

// Signals receives the first signal of each kind, to be passed on to the running child.
var Signals <-chan os.Signal

// Runner returns a command runner that forwards Signals to the child and,
// when stream is not nil, copies the child's output to it.
func Runner(stream io.Writer) *shell.OSRunner {
	opts := []shell.Option{shell.WithSignals(Signals)}
	if stream != nil {
		opts = append(opts, shell.WithStream(stream))
	}

	return &shell.OSRunner{Options: opts}
}
