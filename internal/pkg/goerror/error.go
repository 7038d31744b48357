package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	// TypeServer represents local failures.
	TypeServer Type = iota
	// TypeBusiness represents business rule violations.
	TypeBusiness
	// TypeValidation represents input validation failures.
	TypeValidation
	// TypeUpstream represents failures reported by (or while reaching) a remote service.
	TypeUpstream
	// TypeConfig represents missing or invalid process configuration.
	TypeConfig
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	case TypeUpstream:
		return "ERROR_TYPE_UPSTREAM"
	case TypeConfig:
		return "ERROR_TYPE_CONFIG"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = iota
	// CodeInvalidFormat indicates invalid request format.
	CodeInvalidFormat
	// CodeInvalidInput indicates invalid request input.
	CodeInvalidInput
	// CodeNotFound indicates a missing resource.
	CodeNotFound
	// CodeTooManyRequest indicates rate limiting.
	CodeTooManyRequest
	// CodeUnauthorized indicates authentication failure.
	CodeUnauthorized
	// CodeForbidden indicates authorization failure.
	CodeForbidden
	// CodeUpstream indicates a generic failure of a remote dependency.
	CodeUpstream
	// CodeConfig indicates missing configuration.
	CodeConfig
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeTooManyRequest:
		return "ERROR_CODE_TOO_MANY_REQUESTS"
	case CodeUnauthorized:
		return "ERROR_CODE_UNAUTHORIZED"
	case CodeForbidden:
		return "ERROR_CODE_FORBIDDEN"
	case CodeUpstream:
		return "ERROR_CODE_UPSTREAM"
	case CodeConfig:
		return "ERROR_CODE_CONFIG"
	case CodeInternal:
		return "ERROR_CODE_INTERNAL"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code. Errors produced from a remote
// response additionally keep the numeric HTTP status and, for rate limits,
// the Retry-After hint.
type Error struct {
	err        error
	msg        string
	errType    Type
	code       Code
	fields     map[string]string
	status     int
	retryAfter string
}

// Error implements the error interface.
//
// The user-facing message takes precedence over the wrapped error.
func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}

	if e.err != nil {
		return e.err.Error()
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Logical business not meet with requirement"
	case TypeUpstream:
		return "Upstream request failed"
	case TypeConfig:
		return "Invalid configuration"
	case TypeServer:
		return "Internal error"
	}

	return "Unknown error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Status: %d, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.status,
		e.msg,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Fields returns validation errors (field to message map), if any.
func (e *Error) Fields() map[string]string {
	return e.fields
}

// Status returns the HTTP status reported by the remote service, or 0 when
// the failure happened before a response was received.
func (e *Error) Status() int {
	return e.status
}

// RetryAfter returns the raw Retry-After hint of a rate limited response.
func (e *Error) RetryAfter() string {
	return e.retryAfter
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeUpstream:
		return http.StatusBadGateway
	case CodeConfig, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code) *Error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewConfig creates a configuration error. Configuration errors are fatal at startup.
func NewConfig(msg string) error {
	return new(nil, msg, TypeConfig, CodeConfig)
}

// NewUpstream creates an error describing a failed remote call.
//
// status is the HTTP status of the response, or 0 for transport failures;
// err is the underlying cause, if any.
func NewUpstream(code Code, status int, msg string, err error) error {
	e := new(err, msg, TypeUpstream, code)
	e.status = status
	return e
}

// NewRateLimited creates an upstream rate-limit error carrying the Retry-After hint.
func NewRateLimited(msg, retryAfter string) error {
	e := new(nil, msg, TypeUpstream, CodeTooManyRequest)
	e.status = http.StatusTooManyRequests
	e.retryAfter = retryAfter
	return e
}

// NewInvalidInput creates a validation error for invalid input with a message and underlying error.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return new(err, "Validation error", TypeValidation, CodeInvalidInput)
	}

	if len(kv)%2 != 0 {
		return new(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}

	errCustomValidate := &Error{err: nil, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	errCustomValidate.fields = make(map[string]string)

	for i := 0; i+1 < len(kv); i += 2 {
		errCustomValidate.fields[kv[i]] = kv[i+1]
	}

	return errCustomValidate
}

// NewValidation creates a validation error that keeps err as cause but reports msg.
func NewValidation(msg string, err error) error {
	return new(err, msg, TypeValidation, CodeInvalidInput)
}

// CodeOf returns the Code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.code
	}
	return CodeInternal
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var gerr *Error
	ok := errors.As(err, &gerr)
	return gerr, ok
}
