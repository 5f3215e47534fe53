package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is returned for every non-2xx response. The more specific error kinds embed it,
// so errors.As(err, &httpErr) matches all of them.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

// Error ...
func (e *HTTPError) Error() string {
	return fmt.Sprintf("request to %s failed: status code should be 2xx (%d): %s", e.URL, e.StatusCode, e.Message)
}

// FieldError is one rejected field of a request schema.
type FieldError struct {
	Key     string
	Code    string
	Message string
}

// String ...
func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Key, f.Message, f.Code)
}

// ValidationError means the request schema was rejected, either by the server (400, 422)
// or by the local Validate of a report request, in which case StatusCode is 0.
type ValidationError struct {
	HTTPError
	Fields []FieldError
}

// Error ...
func (e *ValidationError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("invalid request: %s", joinFieldErrors(e.Fields))
	}
	return e.HTTPError.Error()
}

// Unwrap ...
func (e *ValidationError) Unwrap() error {
	if e.StatusCode == 0 {
		return nil
	}
	return &e.HTTPError
}

// NotFoundError means the referenced project, report, template or archive does not exist.
type NotFoundError struct {
	HTTPError
}

// Unwrap ...
func (e *NotFoundError) Unwrap() error {
	return &e.HTTPError
}

// NotReadyError means a download was requested before the job finished.
type NotReadyError struct {
	HTTPError
}

// Unwrap ...
func (e *NotReadyError) Unwrap() error {
	return &e.HTTPError
}

func newLocalValidationError(fields []FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func joinFieldErrors(fields []FieldError) string {
	var parts []string
	for _, field := range fields {
		parts = append(parts, field.String())
	}
	return strings.Join(parts, ", ")
}

// newResponseError maps a non-2xx status to an error kind. Only download endpoints
// report a job that is not finished yet, so NotReadyError is limited to them.
func newResponseError(method, url string, statusCode int, message string, fields []FieldError, download bool) error {
	base := HTTPError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Message:    message,
	}

	switch {
	case statusCode == http.StatusNotFound:
		return &NotFoundError{HTTPError: base}
	case download && (statusCode == http.StatusConflict || statusCode == http.StatusTooEarly):
		return &NotReadyError{HTTPError: base}
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		if base.Message == "" {
			base.Message = joinFieldErrors(fields)
		}
		return &ValidationError{HTTPError: base, Fields: fields}
	default:
		return &base
	}
}

func parseErrorMessage(body []byte) (string, []FieldError, error) {
	type fieldErrors struct {
		Error struct {
			Key    string `json:"key"`
			Errors []struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"errors"`
		} `json:"error"`
	}
	type errorResponse struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Errors []fieldErrors `json:"errors"`
	}

	var response errorResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", nil, err
	}

	var fields []FieldError
	for _, item := range response.Errors {
		for _, e := range item.Error.Errors {
			fields = append(fields, FieldError{Key: item.Error.Key, Code: e.Code, Message: e.Message})
		}
	}

	message := ""
	if response.Error != nil {
		message = response.Error.Message
	}

	return message, fields, nil
}
