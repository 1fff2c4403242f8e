// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/koopa/internal/ctxlog"
)

// Watch reads sigCh until it is closed or ctx is done.
// The first signal of a given type is passed to each forward channel without
// blocking. The second cancels the context via cancel.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc, forward ...chan<- os.Signal) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Warn(ctx, "second signal received, cancelling", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Info(ctx, "signal received, press again to force termination", "signal", sig.String())

			seen[sig] = struct{}{}

			for _, fw := range forward {
				select {
				case fw <- sig:
				default:
					ctxlog.Debug(ctx, "signal not forwarded, receiver busy", "signal", sig.String())
				}
			}
		}
	}
}
