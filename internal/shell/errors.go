// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCommand is returned when a command has no text or no arguments.
	ErrEmptyCommand = errors.New("empty command")
	// ErrInterpreterNotFound is returned when bash is needed but cannot be located.
	ErrInterpreterNotFound = errors.New("could not find bash in any standard location")
	// ErrCommandNotFound is returned when the executable of an argument vector is not on PATH.
	ErrCommandNotFound = errors.New("command not found")
	// ErrFailedToCreatePipe is returned when the output pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrWaitFailed is returned when the process state could not be collected.
	ErrWaitFailed = errors.New("failed to wait for process")
	// ErrCancelled is returned when the context is done before the process exits.
	// The process is killed. The error also matches the context's error.
	ErrCancelled = errors.New("command cancelled")
)

// CommandFailedError is returned when a command exits with a nonzero status.
type CommandFailedError struct {
	// Command is the executed text. Argument vectors are joined with spaces.
	Command string
	// ExitCode is the child's exit status. A child killed by signal N reports 128+N.
	ExitCode int
	// Output holds the last non-empty lines of merged stdout and stderr, oldest first.
	Output []string
}

// Error returns the command, its exit code and the retained output.
func (e *CommandFailedError) Error() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "command exited with status %d: %s", e.ExitCode, e.Command)

	for _, line := range e.Output {
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	return sb.String()
}

// ExitCode extracts the exit code from a *CommandFailedError in err's chain.
func ExitCode(err error) (int, bool) {
	var cf *CommandFailedError
	if errors.As(err, &cf) {
		return cf.ExitCode, true
	}

	return 0, false
}
