// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
	"github.com/matt-FFFFFF/koopa/internal/files"
	"github.com/matt-FFFFFF/koopa/internal/shell"
	"github.com/matt-FFFFFF/koopa/internal/strutil"
	"github.com/matt-FFFFFF/koopa/internal/which"
)

// PrefixEnvVar overrides discovery of the koopa installation.
const PrefixEnvVar = "KOOPA_PREFIX"

// ErrPrefixNotFound is returned when no koopa installation can be located.
var ErrPrefixNotFound = errors.New("could not find koopa in any standard location")

// koopaLocations is searched in order. "koopa" is looked up on PATH.
var koopaLocations = []string{
	"koopa",
	"/usr/local/bin/koopa",
	"/usr/local/koopa/bin/koopa",
	"~/.local/share/koopa/bin/koopa",
}

// Prefix returns the koopa installation directory, which holds the helper
// scripts under bin/. It is KOOPA_PREFIX when set, otherwise two levels
// above the resolved koopa executable.
func Prefix() (string, error) {
	if p := os.Getenv(PrefixEnvVar); p != "" {
		if err := files.AssertIsDir(p); err != nil {
			return "", errors.Join(ErrPrefixNotFound, err)
		}

		return p, nil
	}

	bin, err := which.FindFirst(koopaLocations...)
	if err != nil {
		return "", errors.Join(ErrPrefixNotFound, err)
	}

	if resolved, err := filepath.EvalSymlinks(bin); err == nil {
		bin = resolved
	}

	prefix := filepath.Dir(filepath.Dir(bin))
	if err := files.AssertIsDir(prefix); err != nil {
		return "", errors.Join(ErrPrefixNotFound, err)
	}

	return prefix, nil
}

// Helpers runs the koopa helper scripts found under Prefix/bin.
type Helpers struct {
	Runner shell.Runner
	// Prefix is the koopa installation. When empty it is discovered with
	// the package-level Prefix on first use.
	Prefix string
}

func (h *Helpers) script(name string) (string, error) {
	if h.Prefix == "" {
		p, err := Prefix()
		if err != nil {
			return "", err
		}

		h.Prefix = p
	}

	return filepath.Join(h.Prefix, "bin", name), nil
}

// EnsemblVersion returns the current Ensembl release number.
func (h *Helpers) EnsemblVersion(ctx context.Context) (string, error) {
	script, err := h.script("current-ensembl-version")
	if err != nil {
		return "", err
	}

	return shell.Output(ctx, h.Runner, shell.Argv(script))
}

// GencodeVersion returns the current GENCODE release for organism.
func (h *Helpers) GencodeVersion(ctx context.Context, organism string) (string, error) {
	script, err := h.script("current-gencode-version")
	if err != nil {
		return "", err
	}

	return shell.Output(ctx, h.Runner, shell.Argv(script, organism))
}

// Tx2Gene builds <out>/transcriptome/tx2gene.csv from the transcriptome
// FASTA files in that directory, using the helper for source. An existing
// CSV is kept.
func (h *Helpers) Tx2Gene(ctx context.Context, source, outputDir string) (string, error) {
	dir := filepath.Join(outputDir, string(TypeTranscriptome))
	csv := filepath.Join(dir, "tx2gene.csv")

	if files.IsFile(csv) {
		ctxlog.Info(ctx, "file exists, skipping tx2gene", "file", csv)
		return csv, nil
	}

	script, err := h.script("tx2gene-from-" + source + "-fasta")
	if err != nil {
		return "", err
	}

	// The glob is expanded by the shell.
	line := strutil.ShellQuote(script) + " " +
		strutil.ShellQuote(dir) + "/*.fa*.gz " + strutil.ShellQuote(csv)

	if err := h.Runner.Run(ctx, shell.Line(line)); err != nil {
		return "", err
	}

	return csv, nil
}
