// Package apperr defines the service error taxonomy. Every failure the
// pipeline or its collaborators can produce maps to a stable code so clients
// can tell "your input was bad" from "the service is unavailable" from
// "the model is broken".
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a typed string categorizing application errors.
type Code string

const (
	// Validation (400): malformed time/day/weather input, caller's fault.
	CodeValidation     Code = "validation_failed"
	CodeUnknownWeather Code = "validation_unknown_weather"
	CodeInvalidTime    Code = "validation_invalid_time"

	// Not found (404): geocoding or routing yielded nothing for valid input.
	CodeLocationNotFound Code = "not_found_location"
	CodeNoRoute          Code = "not_found_route"

	// Collaborator transport failure (502): transient, no built-in retry here.
	CodeServiceUnavailable Code = "collaborator_unavailable"

	// Model failures (500).
	CodeModelUnavailable Code = "model_unavailable"
	CodeFeatureMismatch  Code = "model_feature_mismatch"
	CodePredictionFailed Code = "prediction_failed"

	CodeInternal Code = "internal_error"
)

// Error carries a taxonomy code, a client-safe message and the wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error without a wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted client-safe message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around an underlying cause. The cause is kept for
// logs and errors.Is/As; only Message is shown to clients.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HTTPStatus maps the code to its HTTP status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeUnknownWeather, CodeInvalidTime:
		return http.StatusBadRequest
	case CodeLocationNotFound, CodeNoRoute:
		return http.StatusNotFound
	case CodeServiceUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf extracts the taxonomy code from an error chain.
// Unrecognized errors are reported as internal.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsCode reports whether the error chain carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
