// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"bytes"
	"context"
	"strings"
)

// Runner runs commands. Packages that shell out accept a Runner so tests can
// substitute a fake.
type Runner interface {
	Run(ctx context.Context, c Command, opts ...Option) error
}

// OSRunner runs commands as child processes using Run.
type OSRunner struct {
	// Options are applied before the options given to each call.
	Options []Option
}

var _ Runner = (*OSRunner)(nil)

// Run implements Runner.
func (o *OSRunner) Run(ctx context.Context, c Command, opts ...Option) error {
	all := make([]Option, 0, len(o.Options)+len(opts))
	all = append(all, o.Options...)
	all = append(all, opts...)

	return Run(ctx, c, all...)
}

// Output runs c with r and returns its merged output with surrounding
// whitespace removed.
func Output(ctx context.Context, r Runner, c Command, opts ...Option) (string, error) {
	var buf bytes.Buffer

	opts = append(opts[:len(opts):len(opts)], WithStream(&buf))

	if err := r.Run(ctx, c, opts...); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
