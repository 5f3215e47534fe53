package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/bitrise-io/go-utils/retry"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/docker/go-units"
)

const (
	defaultRetries   = 3
	defaultWait      = 5 * time.Second
	transferTimeout  = 10 * time.Minute
	maxErrorBodySize = 1024
)

// TransferDetails ...
type TransferDetails struct {
	Hostname string
	Duration time.Duration
	Size     int64
}

type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("non success status code: %d, body: %s", e.statusCode, e.body)
}

func (e *statusError) isClientError() bool {
	return e.statusCode >= 400 && e.statusCode < 500 && e.statusCode != http.StatusTooManyRequests
}

// FileDownloader ...
type FileDownloader struct {
	client  *http.Client
	logger  log.Logger
	tracker Tracker
	retries uint
	wait    time.Duration
}

// NewFileDownloader ...
func NewFileDownloader(tracker Tracker, logger log.Logger) FileDownloader {
	return FileDownloader{
		client: &http.Client{
			Timeout: transferTimeout,
		},
		logger:  logger,
		tracker: tracker,
		retries: defaultRetries,
		wait:    defaultWait,
	}
}

// Download fetches downloadURL into dstPath. Download links are pre-signed, so no
// authorization is sent.
func (d FileDownloader) Download(downloadURL, dstPath string) (TransferDetails, error) {
	d.logger.Printf("Downloading report")

	details := TransferDetails{}
	if u, err := url.Parse(downloadURL); err == nil {
		details.Hostname = u.Hostname()
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return details, fmt.Errorf("failed to create output dir: %w", err)
	}

	// Client errors (an expired link) end the retries.
	var clientErr error
	start := time.Now()
	err := retry.Times(d.retries).Wait(d.wait).Try(func(attempt uint) error {
		if attempt > 0 {
			d.logger.Warnf("%d attempt failed", attempt)
		}

		size, err := d.downloadOnce(downloadURL, dstPath)
		if err != nil {
			d.logger.Debugf("Download attempt failed: %s", err)
			if statusErr, ok := err.(*statusError); ok && statusErr.isClientError() {
				clientErr = err
				return nil
			}
			return err
		}

		details.Size = size
		return nil
	})
	details.Duration = time.Since(start)
	if clientErr != nil {
		err = clientErr
	}

	d.tracker.logFileTransfer(details, err)

	if err != nil {
		return details, err
	}

	d.logger.Printf("  file size: %s", units.HumanSize(float64(details.Size)))

	return details, nil
}

func (d FileDownloader) downloadOnce(downloadURL, dstPath string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), transferTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(request)
	if err != nil {
		return 0, fmt.Errorf("failed to download report: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			d.logger.Warnf("Failed to close response body: %s", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if err != nil {
			d.logger.Warnf("Failed to read response body: %s", err)
		}
		return 0, &statusError{statusCode: resp.StatusCode, body: string(body)}
	}

	file, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dstPath, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			d.logger.Warnf("Failed to close file: %s", err)
		}
	}()

	size, err := io.Copy(file, resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", dstPath, err)
	}

	return size, nil
}
