package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes rendered in the "code" field of error responses.
const (
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeTypeMismatch     = "TYPE_MISMATCH"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewUnauthorized is the single outcome for every authentication failure.
// The cause is kept for logging and never rendered.
func NewUnauthorized(cause error) error {
	return &DomainError{
		Code:       CodeUnauthorized,
		Message:    "unauthorized",
		HTTPStatus: http.StatusUnauthorized,
		Err:        cause,
	}
}

func NewInvalidJSON(cause error) error {
	return &DomainError{
		Code:       CodeInvalidJSON,
		Message:    "request body is not a valid JSON object",
		HTTPStatus: http.StatusBadRequest,
		Err:        cause,
	}
}

func NewTypeMismatch(field string) error {
	return NewDomainError(CodeTypeMismatch, fmt.Sprintf("field %q has the wrong type", field),
		http.StatusBadRequest, map[string]any{"field": field})
}

func NewValidationError(field, reason string) error {
	return NewDomainError(CodeValidationFailed, fmt.Sprintf("%s %s", field, reason),
		http.StatusBadRequest, map[string]any{"field": field, "reason": reason})
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, nil)
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewMethodNotAllowed(method string) error {
	return NewDomainError(CodeMethodNotAllowed, fmt.Sprintf("method %s not allowed", method),
		http.StatusMethodNotAllowed, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts arbitrary errors to a DomainError. Unknown errors
// become 500s so that storage detail never reaches the client.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case http.StatusNotFound:
			return NewDomainError(CodeNotFound, fiberErr.Message, http.StatusNotFound, nil)
		case http.StatusMethodNotAllowed:
			return NewDomainError(CodeMethodNotAllowed, fiberErr.Message, http.StatusMethodNotAllowed, nil)
		case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
			return NewDomainError(CodeBadRequest, fiberErr.Message, fiberErr.Code, nil)
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
