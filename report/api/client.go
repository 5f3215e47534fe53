package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/retryhttp"
	"github.com/bitrise-steplib/steps-crowdin-reports/redactor"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const defaultBaseURL = "https://api.crowdin.com/api/v2"

// ClientAPI is the report generation workflow: submit a job, poll it, resolve its download link.
type ClientAPI interface {
	GenerateReport(projectID int64, request ReportRequest) (ReportStatus, error)
	CheckReportGenerationStatus(projectID int64, reportID string) (ReportStatus, error)
	DownloadReport(projectID int64, reportID string) (DownloadLink, error)
}

// HTTPClient ...
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReportsClient talks to the reports, report settings templates and report archives endpoints.
// It holds no state besides its transport configuration.
type ReportsClient struct {
	logger     log.Logger
	httpClient HTTPClient
	redactor   redactor.Redactor
	baseURL    string
	authToken  string
	debugDumps bool
}

// BaseURL returns the API root of an enterprise organization, or the crowdin.com API root
// when organization is empty.
func BaseURL(organization string) string {
	organization = strings.TrimSpace(organization)
	if organization == "" {
		return defaultBaseURL
	}
	return fmt.Sprintf("https://%s.api.crowdin.com/api/v2", organization)
}

// NewClient ...
func NewClient(baseURL, authToken string, logger log.Logger) *ReportsClient {
	return NewClientWithHTTPClient(baseURL, authToken, newRetryClient(logger).StandardClient(), logger)
}

func newRetryClient(logger log.Logger) *retryablehttp.Client {
	retryClient := retryhttp.NewClient(logger)
	retryClient.CheckRetry = retryPolicy
	// Surface the last response instead of a generic "giving up" error, so status codes map to error kinds.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return retryClient
}

// retryPolicy retries GET requests like the default policy. Other methods are retried only on
// connection errors, a response with a status code is returned as it is.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if resp != nil && resp.Request != nil && resp.Request.Method != http.MethodGet {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// NewClientWithHTTPClient ...
func NewClientWithHTTPClient(baseURL, authToken string, httpClient HTTPClient, logger log.Logger) *ReportsClient {
	return &ReportsClient{
		logger:     logger,
		httpClient: httpClient,
		redactor:   redactor.New([]string{authToken}, logger),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		authToken:  authToken,
	}
}

// EnableDebugLog turns on redacted request and response dumps at Debug level.
func (c *ReportsClient) EnableDebugLog(enable bool) {
	c.debugDumps = enable
}

func (c *ReportsClient) url(format string, args ...interface{}) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

func withQuery(rawURL string, query url.Values) string {
	if len(query) == 0 {
		return rawURL
	}
	return rawURL + "?" + query.Encode()
}

func listQuery(opts ListOptions) url.Values {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	return query
}

func (c *ReportsClient) get(url string, output interface{}) error {
	return c.perform(http.MethodGet, url, nil, output, false)
}

func (c *ReportsClient) download(url string) (DownloadLink, error) {
	var response dataResponse[DownloadLink]
	if err := c.perform(http.MethodGet, url, nil, &response, true); err != nil {
		return DownloadLink{}, err
	}
	return response.Data, nil
}

func (c *ReportsClient) status(url string) (ReportStatus, error) {
	var response dataResponse[ReportStatus]
	if err := c.get(url, &response); err != nil {
		return ReportStatus{}, err
	}
	return response.Data, nil
}

// perform sends one request. Non-2xx responses are mapped to the error kinds in errors.go
// and returned as they are; transport and encoding failures are wrapped.
func (c *ReportsClient) perform(method, url string, input, output interface{}, download bool) error {
	var body io.Reader
	if input != nil {
		data, err := json.Marshal(input)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal %s %s request", method, url)
		}
		body = bytes.NewReader(data)
	}

	request, err := http.NewRequest(method, url, body)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s %s request", method, url)
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("Content-Type", "application/json; charset=UTF-8")
	if c.authToken != "" {
		request.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	c.debugDump("Request", func() ([]byte, error) { return httputil.DumpRequest(request, true) })

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", url)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warnf("Failed to close response body: %s", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read response of %s %s", method, url)
	}

	c.debugDump("Response", func() ([]byte, error) {
		dump, err := httputil.DumpResponse(resp, false)
		return append(dump, respBody...), err
	})

	if resp.StatusCode >= 300 || resp.StatusCode < 200 {
		message, fields, err := parseErrorMessage(respBody)
		if err != nil {
			c.logger.Warnf("Failed to parse error message from the response: %s", err)
			message = strings.TrimSpace(string(respBody))
		}

		return newResponseError(method, url, resp.StatusCode, message, fields, download)
	}

	if output == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		return errors.Wrapf(err, "failed to decode response of %s %s", method, url)
	}

	return nil
}

func (c *ReportsClient) debugDump(title string, dumpFn func() ([]byte, error)) {
	if !c.debugDumps {
		return
	}

	dump, err := dumpFn()
	if err != nil {
		c.logger.Warnf("%s dump failed: %s", title, err)
		return
	}

	redacted, err := c.redactor.RedactString(string(dump))
	if err != nil {
		c.logger.Warnf("%s dump redaction failed: %s", title, err)
		return
	}

	c.logger.Debugf("%s dump: %s", title, redacted)
}
