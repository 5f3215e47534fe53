package report

import (
	"errors"
	"time"

	"github.com/bitrise-steplib/steps-crowdin-reports/report/api"
)

var errNotFinished = errors.New("report is not finished yet")

// Result ...
type Result struct {
	Status      api.ReportStatus
	DownloadURL string
	ExpireIn    time.Time
	Path        string
	Size        int64
}
