package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// fakeCrowdin serves the reports endpoints from memory. Every status poll moves a job one
// step forward: created -> inProgress -> finished.
type fakeCrowdin struct {
	t *testing.T

	mu             sync.Mutex
	reports        map[string]*ReportStatus
	templates      map[int64]ReportSettingsTemplate
	nextTemplateID int64
	archives       map[int64]ReportArchive
	failReports    bool
}

func newFakeCrowdin(t *testing.T) (*fakeCrowdin, *ReportsClient) {
	f := &fakeCrowdin{
		t:              t,
		reports:        map[string]*ReportStatus{},
		templates:      map[int64]ReportSettingsTemplate{},
		nextTemplateID: 1,
		archives:       map[int64]ReportArchive{},
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v2").Subrouter()
	api.Use(f.authenticate)

	api.HandleFunc("/projects/{projectId}/reports/settings-templates", f.listTemplates).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectId}/reports/settings-templates", f.addTemplate).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectId}/reports/settings-templates/{templateId:[0-9]+}", f.getTemplate).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectId}/reports/settings-templates/{templateId:[0-9]+}", f.editTemplate).Methods(http.MethodPatch)
	api.HandleFunc("/projects/{projectId}/reports/settings-templates/{templateId:[0-9]+}", f.deleteTemplate).Methods(http.MethodDelete)

	api.HandleFunc("/projects/{projectId}/reports", f.generateReport).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectId}/reports/{reportId}", f.reportStatus).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectId}/reports/{reportId}/download", f.downloadReport).Methods(http.MethodGet)

	api.HandleFunc("/users/{userId}/reports/archives/{archiveId:[0-9]+}", f.getArchive).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/reports/archives/{archiveId:[0-9]+}", f.deleteArchive).Methods(http.MethodDelete)
	api.HandleFunc("/users/{userId}/reports/archives/{archiveId:[0-9]+}/exports", f.exportArchive).Methods(http.MethodPost)
	api.HandleFunc("/users/{userId}/reports/archives/{archiveId:[0-9]+}/exports/{exportId}", f.reportStatus).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/reports/archives/{archiveId:[0-9]+}/exports/{exportId}/download", f.downloadReport).Methods(http.MethodGet)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client := NewClientWithHTTPClient(server.URL+"/api/v2", authToken, server.Client(), log.NewLogger())

	return f, client
}

func (f *fakeCrowdin) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+authToken {
			f.writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeCrowdin) generateReport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string          `json:"name"`
		Schema json.RawMessage `json:"schema"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		f.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var schema struct {
		Format Format `json:"format"`
	}
	if err := json.Unmarshal(body.Schema, &schema); err != nil {
		f.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if schema.Format == "" {
		schema.Format = FormatXLSX
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	status := &ReportStatus{
		Identifier: uuid.NewString(),
		Status:     JobStatusCreated,
		Attributes: ReportAttributes{Format: schema.Format, ReportName: body.Name, Schema: body.Schema},
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	f.reports[status.Identifier] = status

	f.writeData(w, http.StatusCreated, status)
}

func (f *fakeCrowdin) exportArchive(w http.ResponseWriter, r *http.Request) {
	var body ExportReportArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		f.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	archiveID, _ := strconv.ParseInt(mux.Vars(r)["archiveId"], 10, 64)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.archives[archiveID]; !ok {
		f.writeError(w, http.StatusNotFound, "Archive Not Found")
		return
	}

	status := &ReportStatus{
		Identifier: uuid.NewString(),
		Status:     JobStatusCreated,
		Attributes: ReportAttributes{Format: body.Format, ReportName: "archive-export"},
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	f.reports[status.Identifier] = status

	f.writeData(w, http.StatusCreated, status)
}

func (f *fakeCrowdin) reportStatus(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	status, ok := f.job(r)
	if !ok {
		f.writeError(w, http.StatusNotFound, "Report Not Found")
		return
	}

	switch status.Status {
	case JobStatusCreated:
		status.Status = JobStatusInProgress
		status.Progress = 50
	case JobStatusInProgress:
		status.Progress = 100
		status.Status = JobStatusFinished
		if f.failReports {
			status.Status = JobStatusFailed
		}
		finishedAt := time.Now().UTC().Truncate(time.Second)
		status.FinishedAt = &finishedAt
	}

	f.writeData(w, http.StatusOK, status)
}

func (f *fakeCrowdin) downloadReport(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	status, ok := f.job(r)
	if !ok {
		f.writeError(w, http.StatusNotFound, "Report Not Found")
		return
	}
	if !status.IsFinished() {
		f.writeError(w, http.StatusConflict, "Report is not ready yet")
		return
	}

	f.writeData(w, http.StatusOK, DownloadLink{
		URL:      "https://storage.crowdin.test/reports/" + status.Identifier + "." + string(status.Attributes.Format),
		ExpireIn: time.Now().UTC().Add(30 * time.Minute).Truncate(time.Second),
	})
}

func (f *fakeCrowdin) job(r *http.Request) (*ReportStatus, bool) {
	vars := mux.Vars(r)
	id := vars["reportId"]
	if exportID, ok := vars["exportId"]; ok {
		id = exportID
	}
	status, ok := f.reports[id]
	return status, ok
}

func (f *fakeCrowdin) listTemplates(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var items []map[string]interface{}
	for id := int64(1); id < f.nextTemplateID; id++ {
		if template, ok := f.templates[id]; ok {
			items = append(items, map[string]interface{}{"data": template})
		}
	}

	f.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":       items,
		"pagination": Pagination{Offset: 0, Limit: 25},
	})
}

func (f *fakeCrowdin) addTemplate(w http.ResponseWriter, r *http.Request) {
	var template ReportSettingsTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		f.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if template.Name == "" {
		f.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"errors": []interface{}{
				map[string]interface{}{"error": map[string]interface{}{
					"key":    "name",
					"errors": []interface{}{map[string]string{"code": "isEmpty", "message": "Value is required and can't be empty"}},
				}},
			},
		})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	template.ID = f.nextTemplateID
	template.CreatedAt = &now
	template.UpdatedAt = &now
	f.templates[template.ID] = template
	f.nextTemplateID++

	f.writeData(w, http.StatusCreated, template)
}

func (f *fakeCrowdin) getTemplate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	template, ok := f.templates[f.templateID(r)]
	if !ok {
		f.writeError(w, http.StatusNotFound, "Report Settings Template Not Found")
		return
	}

	f.writeData(w, http.StatusOK, template)
}

func (f *fakeCrowdin) editTemplate(w http.ResponseWriter, r *http.Request) {
	var patches []PatchRequest
	if err := json.NewDecoder(r.Body).Decode(&patches); err != nil {
		f.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	template, ok := f.templates[f.templateID(r)]
	if !ok {
		f.writeError(w, http.StatusNotFound, "Report Settings Template Not Found")
		return
	}

	for _, patch := range patches {
		if patch.Op != PatchReplace {
			f.writeError(w, http.StatusBadRequest, "unsupported operation: "+string(patch.Op))
			return
		}

		switch strings.TrimPrefix(patch.Path, "/") {
		case "name":
			name, _ := patch.Value.(string)
			template.Name = name
		case "isPublic":
			isPublic, _ := patch.Value.(bool)
			template.IsPublic = isPublic
		default:
			f.writeError(w, http.StatusBadRequest, "unsupported path: "+patch.Path)
			return
		}
	}
	f.templates[template.ID] = template

	f.writeData(w, http.StatusOK, template)
}

func (f *fakeCrowdin) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.templateID(r)
	if _, ok := f.templates[id]; !ok {
		f.writeError(w, http.StatusNotFound, "Report Settings Template Not Found")
		return
	}
	delete(f.templates, id)

	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeCrowdin) templateID(r *http.Request) int64 {
	id, err := strconv.ParseInt(mux.Vars(r)["templateId"], 10, 64)
	if err != nil {
		f.t.Errorf("invalid template id: %s", err)
	}
	return id
}

func (f *fakeCrowdin) getArchive(w http.ResponseWriter, r *http.Request) {
	archiveID, _ := strconv.ParseInt(mux.Vars(r)["archiveId"], 10, 64)

	f.mu.Lock()
	defer f.mu.Unlock()

	archive, ok := f.archives[archiveID]
	if !ok {
		f.writeError(w, http.StatusNotFound, "Archive Not Found")
		return
	}

	f.writeData(w, http.StatusOK, archive)
}

func (f *fakeCrowdin) deleteArchive(w http.ResponseWriter, r *http.Request) {
	archiveID, _ := strconv.ParseInt(mux.Vars(r)["archiveId"], 10, 64)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.archives[archiveID]; !ok {
		f.writeError(w, http.StatusNotFound, "Archive Not Found")
		return
	}
	delete(f.archives, archiveID)

	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeCrowdin) addArchive(archive ReportArchive) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.archives[archive.ID] = archive
}

func (f *fakeCrowdin) writeData(w http.ResponseWriter, statusCode int, data interface{}) {
	f.writeJSON(w, statusCode, map[string]interface{}{"data": data})
}

func (f *fakeCrowdin) writeError(w http.ResponseWriter, statusCode int, message string) {
	f.writeJSON(w, statusCode, map[string]interface{}{
		"error": map[string]interface{}{"code": statusCode, "message": message},
	})
}

func (f *fakeCrowdin) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		f.t.Errorf("failed to write response: %s", err)
	}
}
