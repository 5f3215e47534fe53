package api

import (
	"net/http"
	"net/url"
	"reflect"
)

type reportRequest interface {
	ReportName() string
	Validate() error
}

// GenerateReport submits a project report job. The returned status is not terminal yet;
// poll CheckReportGenerationStatus with its Identifier.
func (c *ReportsClient) GenerateReport(projectID int64, request ReportRequest) (ReportStatus, error) {
	return c.generate(c.url("/projects/%d/reports", projectID), request)
}

// CheckReportGenerationStatus ...
func (c *ReportsClient) CheckReportGenerationStatus(projectID int64, reportID string) (ReportStatus, error) {
	return c.status(c.url("/projects/%d/reports/%s", projectID, url.PathEscape(reportID)))
}

// DownloadReport resolves the download link of a finished report. It fails with a *NotReadyError
// while the job is still running.
func (c *ReportsClient) DownloadReport(projectID int64, reportID string) (DownloadLink, error) {
	return c.download(c.url("/projects/%d/reports/%s/download", projectID, url.PathEscape(reportID)))
}

// GenerateGroupReport ...
func (c *ReportsClient) GenerateGroupReport(groupID int64, request GroupReportRequest) (ReportStatus, error) {
	return c.generate(c.url("/groups/%d/reports", groupID), request)
}

// CheckGroupReportGenerationStatus ...
func (c *ReportsClient) CheckGroupReportGenerationStatus(groupID int64, reportID string) (ReportStatus, error) {
	return c.status(c.url("/groups/%d/reports/%s", groupID, url.PathEscape(reportID)))
}

// DownloadGroupReport ...
func (c *ReportsClient) DownloadGroupReport(groupID int64, reportID string) (DownloadLink, error) {
	return c.download(c.url("/groups/%d/reports/%s/download", groupID, url.PathEscape(reportID)))
}

// GenerateOrganizationReport ...
func (c *ReportsClient) GenerateOrganizationReport(request GroupReportRequest) (ReportStatus, error) {
	return c.generate(c.url("/reports"), request)
}

// CheckOrganizationReportGenerationStatus ...
func (c *ReportsClient) CheckOrganizationReportGenerationStatus(reportID string) (ReportStatus, error) {
	return c.status(c.url("/reports/%s", url.PathEscape(reportID)))
}

// DownloadOrganizationReport ...
func (c *ReportsClient) DownloadOrganizationReport(reportID string) (DownloadLink, error) {
	return c.download(c.url("/reports/%s/download", url.PathEscape(reportID)))
}

// ExportReportArchive starts an export job of an archived report.
func (c *ReportsClient) ExportReportArchive(userID, archiveID int64, request ExportReportArchiveRequest) (ReportStatus, error) {
	var v validator
	v.format(request.Format)
	if err := v.err(); err != nil {
		return ReportStatus{}, err
	}

	var response dataResponse[ReportStatus]
	if err := c.perform(http.MethodPost, c.url("/users/%d/reports/archives/%d/exports", userID, archiveID), request, &response, false); err != nil {
		return ReportStatus{}, err
	}
	return response.Data, nil
}

// CheckReportArchiveExportStatus ...
func (c *ReportsClient) CheckReportArchiveExportStatus(userID, archiveID int64, exportID string) (ReportStatus, error) {
	return c.status(c.url("/users/%d/reports/archives/%d/exports/%s", userID, archiveID, url.PathEscape(exportID)))
}

// DownloadReportArchive ...
func (c *ReportsClient) DownloadReportArchive(userID, archiveID int64, exportID string) (DownloadLink, error) {
	return c.download(c.url("/users/%d/reports/archives/%d/exports/%s/download", userID, archiveID, url.PathEscape(exportID)))
}

func (c *ReportsClient) generate(url string, request reportRequest) (ReportStatus, error) {
	if isNilRequest(request) {
		return ReportStatus{}, missingSchemaError()
	}
	if err := request.Validate(); err != nil {
		return ReportStatus{}, err
	}

	body := generateReportBody{
		Name:   request.ReportName(),
		Schema: request,
	}

	c.logger.Debugf("Generating %s report", request.ReportName())

	var response dataResponse[ReportStatus]
	if err := c.perform(http.MethodPost, url, body, &response, false); err != nil {
		return ReportStatus{}, err
	}
	return response.Data, nil
}

// isNilRequest also catches a typed nil pointer to a variant, like (*TopMembers)(nil).
func isNilRequest(request reportRequest) bool {
	if request == nil {
		return true
	}
	v := reflect.ValueOf(request)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func missingSchemaError() error {
	return newLocalValidationError([]FieldError{{Key: "schema", Code: "isEmpty", Message: "report request is required"}})
}
