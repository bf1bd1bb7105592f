// Package apierr defines the normalized error taxonomy shared by the
// orchestrator, the prompt builder, and the provider invokers. Provider
// specific failure shapes never cross this boundary.
package apierr

import (
	"errors"
	"net/http"
)

type Code string

const (
	// Client input errors, surfaced as 400 and never retried.
	MalformedRequest Code = "malformed_request"
	MissingInput     Code = "missing_input"
	TypeMismatch     Code = "type_mismatch"
	InputTooLong     Code = "input_too_long"
	TemplateNotFound Code = "template_not_found"
	InvalidModel     Code = "invalid_model"

	// A configured-but-inert provider was selected. An expected failure
	// mode, not a bug.
	ProviderNotImplemented Code = "provider_not_implemented"

	// Either the local limiter or the upstream provider throttled us.
	RateLimited Code = "rate_limited"

	// Normalized upstream failures.
	UpstreamUnavailable Code = "upstream_unavailable"
	UpstreamAuthFailure Code = "upstream_auth_failure"
	UpstreamBadRequest  Code = "upstream_bad_request"

	Internal Code = "internal"
)

type Error struct {
	Code    Code
	Param   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NewParam(code Code, param string, message string) *Error {
	return &Error{Code: code, Param: param, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HTTPStatus maps a taxonomy code onto the client-facing status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case MalformedRequest, MissingInput, TypeMismatch, InputTooLong,
		TemplateNotFound, InvalidModel, ProviderNotImplemented:
		return http.StatusBadRequest
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf extracts the taxonomy code from err, or Internal for anything
// unclassified.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return Internal
}

// AsError returns the *Error inside err, if any.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
