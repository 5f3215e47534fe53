package downloader

import (
	"github.com/bitrise-io/go-utils/v2/analytics"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

// Tracker sends report transfer events.
type Tracker struct {
	tracker analytics.Tracker
}

// NewTracker ...
func NewTracker(envRepo env.Repository, logger log.Logger) Tracker {
	p := analytics.Properties{
		"step_id":    "crowdin-reports",
		"build_slug": envRepo.Get("BITRISE_BUILD_SLUG"),
		"app_slug":   envRepo.Get("BITRISE_APP_SLUG"),
	}
	return Tracker{
		tracker: analytics.NewDefaultTracker(logger, p),
	}
}

func (t Tracker) logFileTransfer(details TransferDetails, err error) {
	if t.tracker == nil {
		return
	}

	properties := analytics.Properties{
		"storage_host": details.Hostname,
		"duration_ms":  details.Duration.Milliseconds(),
		"size_bytes":   details.Size,
	}
	if err != nil {
		properties["error"] = err.Error()
	}

	t.tracker.Enqueue("report_downloaded", properties)
}

// Wait blocks until the queued events are sent.
func (t Tracker) Wait() {
	if t.tracker == nil {
		return
	}
	t.tracker.Wait()
}
