// Package git shells out to the git binary for clone operations
package git

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/domain/interfaces"
)

type cloner struct {
	gitPath string
	timeout time.Duration
}

// NewCloner creates a RepoCloner running the given git binary. Every clone
// is bounded by the timeout.
func NewCloner(gitPath string, timeout time.Duration) interfaces.RepoCloner {
	return &cloner{gitPath: gitPath, timeout: timeout}
}

// Clone checks out the branch of remoteURL into destDir
func (c *cloner) Clone(ctx context.Context, remoteURL, destDir, branch string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.gitPath, "clone", remoteURL, destDir, "--branch", branch)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return goerr.Wrap(err, "git clone failed",
			goerr.V("remote", remoteURL),
			goerr.V("branch", branch),
			goerr.V("output", strings.TrimSpace(string(out))),
		)
	}

	ctxlog.From(ctx).Debug("Cloned repository",
		"remote", remoteURL,
		"branch", branch,
		"dest", destDir,
	)
	return nil
}
