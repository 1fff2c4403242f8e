// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for terminal output.
//
// Colour is enabled when stdout is a terminal, unless NO_COLOR is set.
// FORCE_COLOR enables it for non-terminals (e.g. CI logs). The koopa CLI can
// also switch it off explicitly with --no-color.
package color
