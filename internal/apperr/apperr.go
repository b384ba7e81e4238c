// Package apperr defines the error kinds every handler maps onto an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindRateLimited
	KindUpstream
	KindUnavailable
)

// Status returns the HTTP status code for the kind. Conflicts are reported as 400.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUpstream:
		return http.StatusBadGateway
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

const (
	CodeMissingField           = "MISSING_FIELD"
	CodeInvalidField           = "INVALID_FIELD"
	CodeInvalidID              = "INVALID_ID"
	CodeDuplicateEmail         = "DUPLICATE_EMAIL"
	CodeDuplicate              = "DUPLICATE"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeCannotDeleteSuperadmin = "CANNOT_DELETE_SUPERADMIN"
	CodeRateLimited            = "RATE_LIMITED"
	CodeUpstream               = "UPSTREAM_ERROR"
	CodeUnavailable            = "SERVICE_UNAVAILABLE"
	CodeServerError            = "SERVER_ERROR"
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same kind and code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches cause to a new classified error.
func Wrap(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: cause}
}

func Validation(message string) *Error {
	return New(KindValidation, CodeInvalidField, message)
}

// MissingFields reports required fields that were absent or empty.
func MissingFields(fields ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    CodeMissingField,
		Message: "Please provide all required fields: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, CodeForbidden, message)
}

func NotFound(resource string) *Error {
	return New(KindNotFound, CodeNotFound, resource+" not found")
}

func RateLimited(message string) *Error {
	return New(KindRateLimited, CodeRateLimited, message)
}

func Upstream(message string, cause error) *Error {
	return Wrap(KindUpstream, CodeUpstream, message, cause)
}

func Unavailable(message string) *Error {
	return New(KindUnavailable, CodeUnavailable, message)
}

// As extracts an *Error from the chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the kind of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}
