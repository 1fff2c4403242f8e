// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stop renders fatal errors for the terminal and maps them to exit codes.
package stop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/koopa/internal/shell"
)

const (
	exitFailure   = 1
	exitCancelled = 130
)

// Styles holds the lipgloss styles used by Print.
type Styles struct {
	Title   lipgloss.Style
	Command lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates the styles for w. Colour is only used when w is a terminal.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)

	return &Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")),
		Command: r.NewStyle().
			Foreground(lipgloss.Color("12")).
			PaddingLeft(2),
		Output: r.NewStyle().
			Foreground(lipgloss.Color("8")).
			PaddingLeft(2),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("9")),
	}
}

// Print writes err to w. A failed command is shown with its command line,
// exit code and output tail. Nothing is written for a nil error.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}

	s := NewStyles(w)

	var cf *shell.CommandFailedError
	if !errors.As(err, &cf) {
		fmt.Fprintln(w, s.Error.Render("Error: "+err.Error())) //nolint:errcheck
		return
	}

	sb := strings.Builder{}
	sb.WriteString(s.Title.Render(fmt.Sprintf("Error: command failed with exit code %d", cf.ExitCode)))
	sb.WriteString("\n")
	sb.WriteString(s.Command.Render(cf.Command))
	sb.WriteString("\n")

	if len(cf.Output) > 0 {
		sb.WriteString(s.Output.Render(strings.Join(cf.Output, "\n")))
		sb.WriteString("\n")
	}

	fmt.Fprint(w, sb.String()) //nolint:errcheck
}

// ExitCode returns the exit code a process should use after err.
// It is 0 for nil, the child's status for a failed command,
// 130 for cancellation and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if code, ok := shell.ExitCode(err); ok {
		return code
	}

	if errors.Is(err, shell.ErrCancelled) || errors.Is(err, context.Canceled) {
		return exitCancelled
	}

	return exitFailure
}
