// Package async runs background workers with panic recovery. Unlike a bare
// goroutine, a worker that panics or returns an error is logged and, when
// Sentry is configured, reported before the process keeps going.
package async

import (
	"context"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Run executes fn in a new goroutine. The context is passed through
// unchanged, so cancelling it stops the worker. The returned channel is
// closed when the worker exits, whatever the reason.
func Run(ctx context.Context, name string, fn func(ctx context.Context) error) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				sentry.CurrentHub().Recover(r)
				ctxlog.From(ctx).Error("Panic in background worker",
					"worker", name,
					"recover", r,
					"stack", string(debug.Stack()),
				)
			}
		}()

		if err := fn(ctx); err != nil {
			sentry.CaptureException(err)
			ctxlog.From(ctx).Error("Background worker failed",
				"worker", name,
				"error", err,
			)
		}
	}()

	return done
}
