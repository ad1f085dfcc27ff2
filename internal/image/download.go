package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmorgan81/convergence/internal/log"
	"github.com/samber/do"
)

// DownloadError is returned when the bytes of a generated image cannot be
// fetched from the location the generation service returned.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to download image: status %d", e.StatusCode)
	}
	return fmt.Sprintf("failed to download image: %v", e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// IsDownloadError checks if an error is a DownloadError.
func IsDownloadError(err error) bool {
	var dlErr *DownloadError
	return errors.As(err, &dlErr)
}

type Downloader struct {
	Client *http.Client
}

func NewDownloader(i *do.Injector) (*Downloader, error) {
	return &Downloader{Client: do.MustInvoke[*http.Client](i)}, nil
}

// Download fetches url. Anything but a 2xx response is a DownloadError.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("downloader")
	log.Debug("downloading image", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &DownloadError{URL: url, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	log.Info("downloaded image", "bytes", len(data), "content-type", resp.Header.Get("Content-Type"))
	return data, nil
}
