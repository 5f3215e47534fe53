package api

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

// ListReportArchives ...
func (c *ReportsClient) ListReportArchives(userID int64, opts ListReportArchivesOptions) ([]ReportArchive, error) {
	query := listQuery(opts.ListOptions)
	if opts.ScopeType != "" {
		query.Set("scopeType", string(opts.ScopeType))
	}
	if opts.ScopeID != nil {
		query.Set("scopeId", strconv.FormatInt(*opts.ScopeID, 10))
	}
	if opts.ProjectID != nil {
		query.Set("projectId", strconv.FormatInt(*opts.ProjectID, 10))
	}

	var response listResponse[ReportArchive]
	if err := c.get(withQuery(c.url("/users/%d/reports/archives", userID), query), &response); err != nil {
		return nil, err
	}
	return response.items(), nil
}

// GetReportArchive ...
func (c *ReportsClient) GetReportArchive(userID, archiveID int64) (ReportArchive, error) {
	var response dataResponse[ReportArchive]
	if err := c.get(c.url("/users/%d/reports/archives/%d", userID, archiveID), &response); err != nil {
		return ReportArchive{}, err
	}
	return response.Data, nil
}

// DeleteReportArchive deletes an archive. Deleting an archive that no longer exists is not an error.
func (c *ReportsClient) DeleteReportArchive(userID, archiveID int64) error {
	err := c.perform(http.MethodDelete, c.url("/users/%d/reports/archives/%d", userID, archiveID), nil, nil, false)

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		c.logger.Debugf("Report archive %d is already deleted", archiveID)
		return nil
	}

	return err
}
