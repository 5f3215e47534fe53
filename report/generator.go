package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bitrise-io/go-utils/retry"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-crowdin-reports/downloader"
	"github.com/bitrise-steplib/steps-crowdin-reports/report/api"
)

// FileDownloader ...
type FileDownloader interface {
	Download(downloadURL, dstPath string) (downloader.TransferDetails, error)
}

// Generator runs a report job to completion and stores the result in outputDir.
type Generator struct {
	client       api.ClientAPI
	downloader   FileDownloader
	logger       log.Logger
	outputDir    string
	pollAttempts uint
	pollInterval time.Duration
}

// NewGenerator ...
func NewGenerator(client api.ClientAPI, fileDownloader FileDownloader, outputDir string, pollAttempts uint, pollInterval time.Duration, logger log.Logger) Generator {
	return Generator{
		client:       client,
		downloader:   fileDownloader,
		logger:       logger,
		outputDir:    outputDir,
		pollAttempts: pollAttempts,
		pollInterval: pollInterval,
	}
}

// Run ...
func (g Generator) Run(projectID int64, request api.ReportRequest) (Result, error) {
	if request == nil {
		return Result{}, fmt.Errorf("no report request given")
	}

	g.logger.Printf("Generating %s report for project %d", request.ReportName(), projectID)

	generated, err := g.client.GenerateReport(projectID, request)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate %s report: %w", request.ReportName(), err)
	}

	g.logger.Printf("Report job: %s", generated.Identifier)

	status, err := g.waitForReport(projectID, generated)
	if err != nil {
		return Result{}, err
	}

	link, err := g.client.DownloadReport(projectID, status.Identifier)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get download link of report %s: %w", status.Identifier, err)
	}

	format := status.Attributes.Format
	if format == "" {
		format = api.FormatXLSX
	}
	pth := filepath.Join(g.outputDir, fmt.Sprintf("%s-%s.%s", request.ReportName(), status.Identifier, format))

	details, err := g.downloader.Download(link.URL, pth)
	if err != nil {
		return Result{}, fmt.Errorf("failed to download report %s: %w", status.Identifier, err)
	}

	g.logger.Debugf("Downloaded from %s in %s", details.Hostname, details.Duration)

	return Result{
		Status:      status,
		DownloadURL: link.URL,
		ExpireIn:    link.ExpireIn,
		Path:        pth,
		Size:        details.Size,
	}, nil
}

func (g Generator) waitForReport(projectID int64, generated api.ReportStatus) (api.ReportStatus, error) {
	if generated.Status.IsTerminal() {
		return finishedStatus(generated)
	}

	// A failed status check ends polling.
	var checkErr error
	status := generated
	err := retry.Times(g.pollAttempts).Wait(g.pollInterval).Try(func(attempt uint) error {
		current, err := g.client.CheckReportGenerationStatus(projectID, generated.Identifier)
		if err != nil {
			checkErr = fmt.Errorf("failed to check status of report %s: %w", generated.Identifier, err)
			return nil
		}

		if current.Identifier != generated.Identifier {
			checkErr = fmt.Errorf("status check returned report %s instead of %s", current.Identifier, generated.Identifier)
			return nil
		}

		status = current
		g.logger.Printf("Status: %s (%d%%)", status.Status, status.Progress)

		if !status.Status.IsTerminal() {
			return errNotFinished
		}
		return nil
	})
	if checkErr != nil {
		return api.ReportStatus{}, checkErr
	}
	if err != nil {
		return api.ReportStatus{}, fmt.Errorf("report %s did not finish in %d status checks", generated.Identifier, g.pollAttempts+1)
	}

	return finishedStatus(status)
}

func finishedStatus(status api.ReportStatus) (api.ReportStatus, error) {
	if !status.IsFinished() {
		return api.ReportStatus{}, fmt.Errorf("report %s generation %s", status.Identifier, status.Status)
	}
	return status, nil
}
