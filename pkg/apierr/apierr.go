package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is a non-2xx response from a backend service. The original
// status and raw body are kept so the boundary can decide what leaks
// through to the client.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// ModuleError is a precondition enforced by this module itself (inactive
// patron, no permitted request type, missing ids). It always carries its own
// client-facing status instead of being collapsed to 500.
type ModuleError struct {
	StatusCode int
	Message    string
}

func (e *ModuleError) Error() string {
	return e.Message
}

func BadRequest(format string, args ...interface{}) *ModuleError {
	return &ModuleError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Parameter names the offending field of a validation failure.
type Parameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ErrorEntry struct {
	Message    string      `json:"message"`
	Code       string      `json:"code,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// ValidationError is malformed or absent data from an otherwise successful
// backend call, or caller input this module rejects. Surfaced as 422 with a
// structured errors list.
type ValidationError struct {
	Errors []ErrorEntry
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.Errors[0].Message
}

func NewValidationError(message string, params ...Parameter) *ValidationError {
	return &ValidationError{Errors: []ErrorEntry{{Message: message, Parameters: params}}}
}

// Payload is the wire shape of a 422 response body.
func (e *ValidationError) Payload() map[string]interface{} {
	return map[string]interface{}{
		"errors":        e.Errors,
		"total_records": len(e.Errors),
	}
}

// Classify maps a component failure to the client-facing status code and
// body. 401/403/404 backend responses pass through untouched, 422 passes
// through as its structured payload, a backend 400 becomes a 500 (a bad
// request we built ourselves is our bug, not the caller's), everything else
// collapses to 500 with the underlying message.
func Classify(err error) (int, interface{}) {
	var modErr *ModuleError
	if errors.As(err, &modErr) {
		return modErr.StatusCode, map[string]string{"error": modErr.Message}
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return http.StatusUnprocessableEntity, valErr.Payload()
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return httpErr.StatusCode, map[string]string{"error": httpErr.Body}
		case http.StatusUnprocessableEntity:
			var structured map[string]interface{}
			if jsonErr := json.Unmarshal([]byte(httpErr.Body), &structured); jsonErr == nil {
				return http.StatusUnprocessableEntity, structured
			}
			return http.StatusUnprocessableEntity, map[string]string{"error": httpErr.Body}
		default:
			return http.StatusInternalServerError, map[string]string{"error": httpErr.Error()}
		}
	}

	return http.StatusInternalServerError, map[string]string{"error": err.Error()}
}
