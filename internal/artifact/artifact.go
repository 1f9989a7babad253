// Package artifact fetches the agent binary from its remote source and
// places it at the well-known executable path. Placement is atomic: the
// download streams to a temporary file in the destination directory and is
// renamed over the previous copy only once fully written and chmodded, so an
// interrupted run never leaves a half-written binary in place.
package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// FetchError indicates the artifact could not be retrieved from the remote
// source (no connectivity, host unreachable, non-success response).
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetching agent binary from %s: %v", e.URL, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// PlaceError indicates the fetched artifact could not be written, made
// executable, or moved into place.
type PlaceError struct {
	Path string
	Err  error
}

func (e *PlaceError) Error() string { return fmt.Sprintf("placing agent binary at %s: %v", e.Path, e.Err) }
func (e *PlaceError) Unwrap() error { return e.Err }

// Installer downloads and installs the agent binary.
type Installer struct {
	url    string
	client *retryablehttp.Client
	logger *zap.Logger
}

// New creates an Installer for the given source URL. Retries are
// transport-level only, bounded by the retry count and the overall timeout;
// the caller's pipeline step runs exactly once.
func New(url string, timeout time.Duration, retries int, logger *zap.Logger) *Installer {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = nil

	return &Installer{
		url:    url,
		client: client,
		logger: logger,
	}
}

// Install fetches the binary and atomically replaces destPath with it,
// marked executable. Any prior copy is overwritten unconditionally; on
// failure it is left untouched.
func (i *Installer) Install(ctx context.Context, destPath string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, i.url, nil)
	if err != nil {
		return &FetchError{URL: i.url, Err: err}
	}

	i.logger.Info("fetching agent binary", zap.String("url", i.url))

	resp, err := i.client.Do(req)
	if err != nil {
		return &FetchError{URL: i.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &FetchError{URL: i.url, Err: fmt.Errorf("source returned status %d", resp.StatusCode)}
	}

	// Temp file next to the destination so the final rename stays on one
	// filesystem.
	tmpPath := filepath.Join(filepath.Dir(destPath), fmt.Sprintf(".uptimed-install-%d", time.Now().UnixNano()))
	out, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return &PlaceError{Path: destPath, Err: err}
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return &FetchError{URL: i.url, Err: fmt.Errorf("streaming artifact: %w", err)}
	}

	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return &PlaceError{Path: destPath, Err: fmt.Errorf("marking executable: %w", err)}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return &PlaceError{Path: destPath, Err: err}
	}

	i.logger.Debug("agent binary placed", zap.String("path", destPath), zap.Int64("bytes", n))
	return nil
}
