// Package response provides the JSON envelope of the mariner API. Every
// endpoint answers with {"data": ..., "error": ...}; exactly one of the two
// is set.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/harborline/mariner/pkg/errors"
)

// Error codes.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnknownCategory    = "UNKNOWN_CATEGORY"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeUpstream           = "UPSTREAM_UNAVAILABLE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Response is the API envelope.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is the error half of the envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes resp with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encoding failure cannot be reported.
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail(CodeBadRequest, message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail(CodeNotFound, message, details))
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed, Fail(
		CodeMethodNotAllowed,
		"Method not allowed",
		"Method "+method+" is not supported for this endpoint",
	))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter, details string) {
	JSON(w, http.StatusTooManyRequests, Fail(CodeRateLimited, "Rate limit exceeded", details))
}

// InternalError writes a 500 error response. The cause is not exposed.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		CodeInternal,
		"Internal server error",
		"An unexpected error occurred",
	))
}

// BadGateway writes a 502 error response for failing upstream sources.
func BadGateway(w http.ResponseWriter, details string) {
	JSON(w, http.StatusBadGateway, Fail(CodeUpstream, "Upstream source unavailable", details))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, details string) {
	JSON(w, http.StatusServiceUnavailable, Fail(CodeServiceUnavailable, "Service unavailable", details))
}

// Status returns the HTTP status ErrorFromType writes for err.
func Status(err error) int {
	var cfgErr *errors.ConfigError
	switch {
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsValidationError(err):
		return http.StatusBadRequest
	case errors.IsUpstreamUnavailable(err):
		return http.StatusBadGateway
	case errors.As(err, &cfgErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorFromType maps typed errors to HTTP responses. Unknown categories
// are checked before generic validation so clients can tell them apart.
func ErrorFromType(w http.ResponseWriter, err error) {
	switch status := Status(err); {
	case errors.IsUnknownCategory(err):
		JSON(w, status, Fail(CodeUnknownCategory, err.Error(), ""))
	case status == http.StatusNotFound:
		NotFound(w, err.Error(), "")
	case status == http.StatusBadRequest:
		BadRequest(w, err.Error(), "")
	case status == http.StatusBadGateway:
		BadGateway(w, err.Error())
	case status == http.StatusServiceUnavailable:
		ServiceUnavailable(w, err.Error())
	default:
		InternalError(w, err)
	}
}
