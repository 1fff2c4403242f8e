// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/koopa/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func testRoot(out *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:           "koopa",
		Writer:         out,
		ErrWriter:      out,
		Commands:       []*cli.Command{NewCmd()},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func TestCommand(t *testing.T) {
	c, err := command("echo hi | cat", nil)
	require.NoError(t, err)
	assert.True(t, c.IsLine())

	c, err = command("", []string{"echo", "a b"})
	require.NoError(t, err)
	assert.False(t, c.IsLine())
	assert.Equal(t, "echo a b", c.String())

	_, err = command("x", []string{"y"})
	require.ErrorIs(t, err, ErrBothForms)

	_, err = command("", nil)
	require.ErrorIs(t, err, ErrNoCommand)
}

func TestRun_Tokens(t *testing.T) {
	var out bytes.Buffer

	err := testRoot(&out).Run(context.Background(), []string{"koopa", "run", "--", "echo", "a;b"})
	require.NoError(t, err)
	assert.Equal(t, "a;b\n", out.String())
}

func TestRun_ShellWithEnvAndDir(t *testing.T) {
	var out bytes.Buffer

	dir := t.TempDir()

	err := testRoot(&out).Run(context.Background(), []string{
		"koopa", "run", "--env", "GREETING=hello", "--dir", dir, "--shell", `echo "$GREETING" > greeting.txt; cat greeting.txt`,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestRun_FailurePropagatesExitCode(t *testing.T) {
	var out bytes.Buffer

	err := testRoot(&out).Run(context.Background(), []string{"koopa", "run", "--quiet", "--shell", "echo oops; exit 7"})

	code, ok := shell.ExitCode(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, 7, code)
	assert.Empty(t, out.String(), "quiet suppresses streaming")
}
