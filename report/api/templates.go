package api

import (
	"net/http"
)

// ListReportSettingsTemplates ...
func (c *ReportsClient) ListReportSettingsTemplates(projectID int64, opts ListOptions) ([]ReportSettingsTemplate, error) {
	return c.listTemplates(c.url("/projects/%d/reports/settings-templates", projectID), opts)
}

// GetReportSettingsTemplate ...
func (c *ReportsClient) GetReportSettingsTemplate(projectID, templateID int64) (ReportSettingsTemplate, error) {
	return c.getTemplate(c.url("/projects/%d/reports/settings-templates/%d", projectID, templateID))
}

// AddReportSettingsTemplate ...
func (c *ReportsClient) AddReportSettingsTemplate(projectID int64, template ReportSettingsTemplate) (ReportSettingsTemplate, error) {
	return c.addTemplate(c.url("/projects/%d/reports/settings-templates", projectID), template)
}

// EditReportSettingsTemplate sends the patches in order; the server applies them atomically.
func (c *ReportsClient) EditReportSettingsTemplate(projectID, templateID int64, patches []PatchRequest) (ReportSettingsTemplate, error) {
	return c.editTemplate(c.url("/projects/%d/reports/settings-templates/%d", projectID, templateID), patches)
}

// DeleteReportSettingsTemplate ...
func (c *ReportsClient) DeleteReportSettingsTemplate(projectID, templateID int64) error {
	return c.perform(http.MethodDelete, c.url("/projects/%d/reports/settings-templates/%d", projectID, templateID), nil, nil, false)
}

// ListUserReportSettingsTemplates ...
func (c *ReportsClient) ListUserReportSettingsTemplates(userID int64, opts ListOptions) ([]ReportSettingsTemplate, error) {
	return c.listTemplates(c.url("/users/%d/reports/settings-templates", userID), opts)
}

// GetUserReportSettingsTemplate ...
func (c *ReportsClient) GetUserReportSettingsTemplate(userID, templateID int64) (ReportSettingsTemplate, error) {
	return c.getTemplate(c.url("/users/%d/reports/settings-templates/%d", userID, templateID))
}

// AddUserReportSettingsTemplate ...
func (c *ReportsClient) AddUserReportSettingsTemplate(userID int64, template ReportSettingsTemplate) (ReportSettingsTemplate, error) {
	return c.addTemplate(c.url("/users/%d/reports/settings-templates", userID), template)
}

// EditUserReportSettingsTemplate ...
func (c *ReportsClient) EditUserReportSettingsTemplate(userID, templateID int64, patches []PatchRequest) (ReportSettingsTemplate, error) {
	return c.editTemplate(c.url("/users/%d/reports/settings-templates/%d", userID, templateID), patches)
}

// DeleteUserReportSettingsTemplate ...
func (c *ReportsClient) DeleteUserReportSettingsTemplate(userID, templateID int64) error {
	return c.perform(http.MethodDelete, c.url("/users/%d/reports/settings-templates/%d", userID, templateID), nil, nil, false)
}

func (c *ReportsClient) listTemplates(url string, opts ListOptions) ([]ReportSettingsTemplate, error) {
	var response listResponse[ReportSettingsTemplate]
	if err := c.get(withQuery(url, listQuery(opts)), &response); err != nil {
		return nil, err
	}
	return response.items(), nil
}

func (c *ReportsClient) getTemplate(url string) (ReportSettingsTemplate, error) {
	var response dataResponse[ReportSettingsTemplate]
	if err := c.get(url, &response); err != nil {
		return ReportSettingsTemplate{}, err
	}
	return response.Data, nil
}

func (c *ReportsClient) addTemplate(url string, template ReportSettingsTemplate) (ReportSettingsTemplate, error) {
	// Server assigned fields are not part of the add form.
	template.ID = 0
	template.CreatedAt = nil
	template.UpdatedAt = nil

	var response dataResponse[ReportSettingsTemplate]
	if err := c.perform(http.MethodPost, url, template, &response, false); err != nil {
		return ReportSettingsTemplate{}, err
	}
	return response.Data, nil
}

func (c *ReportsClient) editTemplate(url string, patches []PatchRequest) (ReportSettingsTemplate, error) {
	if len(patches) == 0 {
		return ReportSettingsTemplate{}, newLocalValidationError([]FieldError{{Key: "patches", Code: "isEmpty", Message: "at least one patch operation is required"}})
	}

	var response dataResponse[ReportSettingsTemplate]
	if err := c.perform(http.MethodPatch, url, patches, &response, false); err != nil {
		return ReportSettingsTemplate{}, err
	}
	return response.Data, nil
}
