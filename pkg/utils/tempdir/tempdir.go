// Package tempdir provides scoped temporary directories: the directory is
// created for the duration of one callback and removed on every exit path,
// including panics.
package tempdir

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// With creates a temporary directory, passes it to fn, and removes it when
// fn returns or panics. The pattern follows os.MkdirTemp conventions.
func With(ctx context.Context, pattern string, fn func(dir string) error) error {
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary directory", goerr.V("pattern", pattern))
	}

	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			ctxlog.From(ctx).Warn("Failed to clean up temporary directory",
				"dir", dir,
				"error", rmErr,
			)
		}
	}()

	if err := os.Chmod(dir, 0700); err != nil {
		return goerr.Wrap(err, "failed to set directory permissions", goerr.V("dir", dir))
	}

	return fn(dir)
}
