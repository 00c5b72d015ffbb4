package recipe

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/domain/interfaces"
)

type downloader struct {
	httpClient *http.Client
}

// NewDownloader creates an ArchiveDownloader with the given per-download
// timeout
func NewDownloader(timeout time.Duration) interfaces.ArchiveDownloader {
	return &downloader{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Download fetches the archive URL into destPath
func (d *downloader) Download(ctx context.Context, archiveURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build download request", goerr.V("url", archiveURL))
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to download archive", goerr.V("url", archiveURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return goerr.New("unexpected status downloading archive",
			goerr.V("url", archiveURL),
			goerr.V("status", resp.StatusCode),
		)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return goerr.Wrap(err, "failed to create archive file", goerr.V("path", destPath))
	}
	defer f.Close()

	size, err := io.Copy(f, resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to write archive file", goerr.V("path", destPath))
	}

	ctxlog.From(ctx).Debug("Downloaded source archive",
		"url", archiveURL,
		"path", destPath,
		"size_bytes", size,
	)
	return nil
}
