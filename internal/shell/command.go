// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/koopa/internal/which"
)

const (
	// DefaultShell interprets lines that need nothing beyond POSIX sh.
	DefaultShell = "/bin/sh"
	// PipefailPrefix is prepended to lines that run under bash.
	PipefailPrefix = "set -o pipefail; "

	shellSwitch = "-c"
)

// bashSyntax lists the markers that route a line to bash: a pipeline, and
// the two forms of process substitution, which POSIX sh does not support.
var bashSyntax = []string{" | ", ">(", "<("}

// Command is a command to run, either a shell line or an argument vector.
// The zero value is an empty argument vector.
type Command struct {
	line   string
	argv   []string
	isLine bool
}

// Line returns a command interpreted by a shell.
func Line(script string) Command {
	return Command{line: script, isLine: true}
}

// Argv returns a command executed directly, without a shell.
// Each argument is converted with fmt.Sprint.
func Argv(args ...any) Command {
	argv := make([]string, len(args))
	for i, a := range args {
		argv[i] = fmt.Sprint(a)
	}

	return Command{argv: argv}
}

// IsLine reports whether the command is a shell line.
func (c Command) IsLine() bool {
	return c.isLine
}

// String returns the line, or the argument vector joined by spaces.
func (c Command) String() string {
	if c.isLine {
		return c.line
	}

	return strings.Join(c.argv, " ")
}

// Invocation is a normalized command, ready to be executed.
type Invocation struct {
	// Script is the text passed to the shell when UseShell is true.
	Script string
	// Argv is the argument vector when UseShell is false.
	Argv []string
	// UseShell is true for lines.
	UseShell bool
	// Interpreter is the bash path for lines that need pipefail.
	// It is empty when DefaultShell is used.
	Interpreter string
}

// Normalize decides how c is executed.
//
// Lines containing a pipeline (" | ") or process substitution (">(" or "<(")
// get PipefailPrefix and run under bash, resolved with Interpreter. Other
// lines run under DefaultShell. Argument vectors are passed through.
func Normalize(c Command) (Invocation, error) {
	if !c.isLine {
		if len(c.argv) == 0 || c.argv[0] == "" {
			return Invocation{}, ErrEmptyCommand
		}

		return Invocation{Argv: append([]string(nil), c.argv...)}, nil
	}

	if strings.TrimSpace(c.line) == "" {
		return Invocation{}, ErrEmptyCommand
	}

	if !NeedsPipefail(c.line) {
		return Invocation{Script: c.line, UseShell: true}, nil
	}

	bash, err := Interpreter()
	if err != nil {
		return Invocation{}, err
	}

	return Invocation{
		Script:      PipefailPrefix + c.line,
		UseShell:    true,
		Interpreter: bash,
	}, nil
}

// NeedsPipefail reports whether a line uses syntax that must run under bash with pipefail.
func NeedsPipefail(line string) bool {
	for _, s := range bashSyntax {
		if strings.Contains(line, s) {
			return true
		}
	}

	return false
}

// Text is the command as executed: the script for shell lines, the
// space-joined argument vector otherwise.
func (inv Invocation) Text() string {
	if inv.UseShell {
		return inv.Script
	}

	return strings.Join(inv.Argv, " ")
}

// process returns the executable path and the full argv, including argv[0].
// A relative argv[0] containing a path separator is resolved against dir,
// the child's working directory, when dir is set.
func (inv Invocation) process(dir string) (string, []string, error) {
	if inv.UseShell {
		sh := inv.Interpreter
		if sh == "" {
			sh = DefaultShell
		}

		return sh, []string{sh, shellSwitch, inv.Script}, nil
	}

	if len(inv.Argv) == 0 {
		return "", nil, ErrEmptyCommand
	}

	name := inv.Argv[0]
	if dir != "" && strings.ContainsRune(name, os.PathSeparator) && !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}

	path, err := which.Find(name)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrCommandNotFound, inv.Argv[0])
	}

	return path, inv.Argv, nil
}
