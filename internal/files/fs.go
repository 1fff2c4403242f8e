// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package files contains the filesystem helpers used by the download and genome recipes.
package files

import "github.com/spf13/afero"

// FsFactory is a function that returns an afero filesystem.
// Tests replace it with an in-memory filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}
