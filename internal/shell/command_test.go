// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Lines(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		pipefail bool
	}{
		{name: "plain", line: "echo hi > out.txt", pipefail: false},
		{name: "semicolon", line: "cd /tmp; ls", pipefail: false},
		{name: "logical or is not a pipe", line: "false || true", pipefail: false},
		{name: "pipe without spaces is not a pipe", line: "echo a|cat", pipefail: false},
		{name: "pipeline", line: "zcat in.gz | head -n 1", pipefail: true},
		{name: "output substitution", line: "tee >(wc -l) < in.txt", pipefail: true},
		{name: "input substitution", line: "diff <(sort a) <(sort b)", pipefail: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := Normalize(Line(tc.line))
			require.NoError(t, err)
			assert.True(t, inv.UseShell)
			assert.Nil(t, inv.Argv)

			if !tc.pipefail {
				assert.Equal(t, tc.line, inv.Script)
				assert.Empty(t, inv.Interpreter)

				return
			}

			assert.Equal(t, PipefailPrefix+tc.line, inv.Script)
			assert.True(t, strings.HasSuffix(inv.Interpreter, "bash"), "interpreter %q", inv.Interpreter)
		})
	}
}

func TestNormalize_Argv(t *testing.T) {
	inv, err := Normalize(Argv("echo", "a;b", 3))
	require.NoError(t, err)
	assert.False(t, inv.UseShell)
	assert.Equal(t, []string{"echo", "a;b", "3"}, inv.Argv)
	assert.Equal(t, "echo a;b 3", inv.Text())
}

func TestNormalize_ArgvIsCopied(t *testing.T) {
	c := Argv("echo", "x")
	inv, err := Normalize(c)
	require.NoError(t, err)

	inv.Argv[1] = "changed"
	assert.Equal(t, "echo x", c.String())
}

func TestNormalize_Empty(t *testing.T) {
	for _, c := range []Command{Line(""), Line("   \n"), Argv(), {}, Argv("")} {
		_, err := Normalize(c)
		require.ErrorIs(t, err, ErrEmptyCommand, "command %#v", c)
	}
}

func TestNormalize_InterpreterMissing(t *testing.T) {
	stubBashLocations(t, "/definitely/not/bash")

	_, err := Normalize(Line("a | b"))
	require.ErrorIs(t, err, ErrInterpreterNotFound)

	inv, err := Normalize(Line("echo ok"))
	require.NoError(t, err, "lines without bash syntax do not need the interpreter")
	assert.Equal(t, "echo ok", inv.Script)
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "ls -l", Line("ls -l").String())
	assert.True(t, Line("ls").IsLine())
	assert.Equal(t, "ls -l /tmp", Argv("ls", "-l", "/tmp").String())
	assert.False(t, Argv("ls").IsLine())
}

func TestInvocation_Process(t *testing.T) {
	path, argv, err := Invocation{Script: "exit 0", UseShell: true}.process("")
	require.NoError(t, err)
	assert.Equal(t, DefaultShell, path)
	assert.Equal(t, []string{DefaultShell, "-c", "exit 0"}, argv)

	_, _, err = Invocation{Argv: []string{"koopa-no-such-command"}}.process("")
	require.ErrorIs(t, err, ErrCommandNotFound)
}

func TestInvocation_ProcessRelativeToDir(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "hello.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho hello\n"), 0o755))

	path, argv, err := Invocation{Argv: []string{"./hello.sh", "x"}}.process(dir)
	require.NoError(t, err)
	assert.Equal(t, script, path)
	assert.Equal(t, []string{"./hello.sh", "x"}, argv)

	_, _, err = Invocation{Argv: []string{"./hello.sh"}}.process(t.TempDir())
	require.ErrorIs(t, err, ErrCommandNotFound)
}
