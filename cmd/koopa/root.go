// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/matt-FFFFFF/koopa/cmd/koopa/download"
	"github.com/matt-FFFFFF/koopa/cmd/koopa/genome"
	"github.com/matt-FFFFFF/koopa/cmd/koopa/run"
	"github.com/matt-FFFFFF/koopa/cmd/koopa/which"
	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	verboseFlag   = "verbose"
	logFormatFlag = "log-format"

	logFormatText = "text"
	logFormatJSON = "json"
)

// ErrLogFormat is returned for an unknown --log-format.
var ErrLogFormat = errors.New("unknown log format")

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:  "koopa",
		Usage: "Shell bootstrap helpers: run commands, download files and reference genomes",
		Description: `koopa runs external commands with predictable failure reporting and
downloads reference genome files from Ensembl and GENCODE.

The log level defaults to WARN and can be set with KOOPA_LOG_LEVEL
(DEBUG, INFO, WARN, ERROR) or raised to INFO with --verbose.`,
		Commands: []*cli.Command{
			run.NewCmd(),
			which.NewCmd(),
			download.NewCmd(),
			genome.NewCmd(),
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "Log progress messages",
			},
			&cli.StringFlag{
				Name:  logFormatFlag,
				Usage: "Log `FORMAT`: text or json",
				Value: logFormatText,
			},
		},
		Before:    before,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		// Errors are printed and mapped to exit codes in main.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Copyright:      "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool(verboseFlag) && ctxlog.LevelVar.Level() > slog.LevelInfo {
		ctxlog.LevelVar.Set(slog.LevelInfo)
	}

	switch f := cmd.String(logFormatFlag); f {
	case logFormatText:
	case logFormatJSON:
		ctx = ctxlog.New(ctx, ctxlog.JSONLogger)
	default:
		return ctx, fmt.Errorf("%w: %q", ErrLogFormat, f)
	}

	return ctx, nil
}
