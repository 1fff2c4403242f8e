// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package genome

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/koopa/cmd/koopa/cmdstate"
	"github.com/matt-FFFFFF/koopa/internal/genome"
	"github.com/urfave/cli/v3"
)

const gencodeOrganismDefault = "Homo sapiens"

// ErrVersionSource is returned when the version argument is not ensembl or gencode.
var ErrVersionSource = errors.New("specify ensembl or gencode")

func newVersionCmd() *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "Print the current Ensembl or GENCODE release",
		ArgsUsage: "ensembl|gencode",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  organismFlag,
				Usage: "GENCODE `ORGANISM`, \"Homo sapiens\" or \"Mus musculus\"",
				Value: gencodeOrganismDefault,
			},
		},
		Action: versionAction,
	}
}

func versionAction(ctx context.Context, cmd *cli.Command) error {
	h := &genome.Helpers{Runner: cmdstate.Runner(nil)}

	var (
		v   string
		err error
	)

	switch cmd.Args().First() {
	case genome.SourceEnsembl:
		v, err = h.EnsemblVersion(ctx)
	case genome.SourceGencode:
		v, err = h.GencodeVersion(ctx, cmd.String(organismFlag))
	default:
		return ErrVersionSource
	}

	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, v) //nolint:errcheck

	return nil
}
