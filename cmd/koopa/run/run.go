// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements "koopa run".
package run

import (
	"context"
	"errors"
	"strings"

	"github.com/matt-FFFFFF/koopa/cmd/koopa/cmdstate"
	"github.com/matt-FFFFFF/koopa/internal/shell"
	"github.com/urfave/cli/v3"
)

const (
	shellFlag = "shell"
	envFlag   = "env"
	dirFlag   = "dir"
	quietFlag = "quiet"
)

var (
	// ErrNoCommand is returned when neither a shell string nor tokens are given.
	ErrNoCommand = errors.New("specify a command after -- or with --shell")
	// ErrBothForms is returned when a shell string and tokens are both given.
	ErrBothForms = errors.New("--shell cannot be combined with command tokens")
)

// NewCmd returns the command that runs a single command and exits with its status.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a command, reporting the tail of its output if it fails",
		Description: `Run a command given as tokens after "--", or as a shell string with --shell.

Tokens are executed directly, without a shell. Shell strings run under /bin/sh,
or under bash with "set -o pipefail" when they contain a pipeline (" | ") or
process substitution.

Output is streamed as it is produced. If the command fails, its last 100 lines
of output are printed together with the exit status, and koopa exits with the
same status.`,
		ArgsUsage: "-- COMMAND [ARG...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     shellFlag,
				Aliases:  []string{"c"},
				Usage:    "Run `SCRIPT` with a shell instead of running tokens directly",
				OnlyOnce: true,
			},
			&cli.StringMapFlag{
				Name:    envFlag,
				Aliases: []string{"e"},
				Usage:   "Set an environment variable for the command, as `KEY=VALUE`. May be repeated",
			},
			&cli.StringFlag{
				Name:      dirFlag,
				Aliases:   []string{"C"},
				Usage:     "Run the command in `DIR`",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:    quietFlag,
				Aliases: []string{"q"},
				Usage:   "Do not stream output, only report it on failure",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	c, err := command(cmd.String(shellFlag), cmd.Args().Slice())
	if err != nil {
		return err
	}

	var opts []shell.Option

	if env := cmd.StringMap(envFlag); len(env) > 0 {
		opts = append(opts, shell.WithEnv(env))
	}

	if dir := cmd.String(dirFlag); dir != "" {
		opts = append(opts, shell.WithDir(dir))
	}

	stream := cmd.Root().Writer
	if cmd.Bool(quietFlag) {
		stream = nil
	}

	return cmdstate.Runner(stream).Run(ctx, c, opts...)
}

func command(script string, tokens []string) (shell.Command, error) {
	switch {
	case script != "" && len(tokens) > 0:
		return shell.Command{}, ErrBothForms
	case script != "":
		return shell.Line(script), nil
	case len(tokens) == 0 || strings.TrimSpace(tokens[0]) == "":
		return shell.Command{}, ErrNoCommand
	}

	args := make([]any, len(tokens))
	for i, t := range tokens {
		args[i] = t
	}

	return shell.Argv(args...), nil
}
