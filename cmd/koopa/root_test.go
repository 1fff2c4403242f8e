// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
	"github.com/matt-FFFFFF/koopa/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_RunPropagatesExitCode(t *testing.T) {
	var out bytes.Buffer

	root := newRootCmd()
	root.Writer = &out
	root.ErrWriter = &out

	err := root.Run(context.Background(), []string{"koopa", "run", "--shell", "echo visible; exit 4"})

	code, ok := shell.ExitCode(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, 4, code)
	assert.Contains(t, out.String(), "visible")
}

func TestRoot_Verbose(t *testing.T) {
	old := ctxlog.LevelVar.Level()
	t.Cleanup(func() { ctxlog.LevelVar.Set(old) })
	ctxlog.LevelVar.Set(slog.LevelWarn)

	var out bytes.Buffer

	root := newRootCmd()
	root.Writer = &out

	require.NoError(t, root.Run(context.Background(), []string{"koopa", "--verbose", "run", "--", "true"}))
	assert.Equal(t, slog.LevelInfo, ctxlog.LevelVar.Level())
}

func TestRoot_LogFormat(t *testing.T) {
	var out bytes.Buffer

	root := newRootCmd()
	root.Writer = &out
	root.ErrWriter = &out

	err := root.Run(context.Background(), []string{"koopa", "--log-format", "xml", "run", "--", "true"})
	require.ErrorIs(t, err, ErrLogFormat)
}
