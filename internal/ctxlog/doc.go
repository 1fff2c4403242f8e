// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger writes to stderr through PrettyHandler, a console
// handler that prints a timestamp, a coloured level, the message and the
// record's attributes as compact JSON. The level is shared through LevelVar
// and initialised from the KOOPA_LOG_LEVEL environment variable.
package ctxlog
