// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the koopa command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/koopa"
	"github.com/matt-FFFFFF/koopa/cmd/koopa/cmdstate"
	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
	"github.com/matt-FFFFFF/koopa/internal/signalbroker"
	"github.com/matt-FFFFFF/koopa/internal/stop"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)
	forward := make(chan os.Signal, 1)
	cmdstate.Signals = forward

	go signalbroker.Watch(ctx, sigCh, cancel, forward)

	root := newRootCmd()
	root.Version = fmt.Sprintf("%s (commit: %s)", koopa.Version, koopa.Commit)

	err := root.Run(ctx, os.Args)

	signalbroker.Stop(sigCh)
	cancel()

	if err != nil {
		stop.Print(root.ErrWriter, err)
		os.Exit(stop.ExitCode(err)) //nolint:gocritic
	}
}
