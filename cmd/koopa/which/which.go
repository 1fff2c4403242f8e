// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package which implements "koopa which".
package which

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/koopa/internal/which"
	"github.com/urfave/cli/v3"
)

// ErrNoNames is returned when no executable names are given.
var ErrNoNames = errors.New("specify at least one executable name")

// NewCmd returns the command that prints the path of each named executable.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:      "which",
		Usage:     "Print the path of each executable found on PATH",
		ArgsUsage: "NAME...",
		Action:    actionFunc,
	}
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	names := cmd.Args().Slice()
	if len(names) == 0 {
		return ErrNoNames
	}

	var errs []error

	for _, name := range names {
		p, err := which.Find(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		fmt.Fprintln(cmd.Root().Writer, p) //nolint:errcheck
	}

	return errors.Join(errs...)
}
