package pkgerror

import (
	"fmt"
	"net/http"
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer     Type = iota // Server-side errors (e.g., unexpected failures in a handler).
	TypeValidation             // Client input errors (e.g., malformed path, unknown chain).
	TypeUpstream               // A dependency the request relies on did not answer properly.
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeUpstream:
		return "ERROR_TYPE_UPSTREAM"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	CodeInternal   Code = iota // Internal or unspecified error.
	CodeBadRequest             // Request cannot be served as sent.
	CodeNotFound               // Nothing is routed at the requested path.
	CodeUpstream               // Upstream call failed as a whole.
)

func (c Code) String() string {
	switch c {
	case CodeBadRequest:
		return "ERROR_CODE_BAD_REQUEST"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeUpstream:
		return "ERROR_CODE_UPSTREAM"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code. The wrapped error is for logs
// only, Msg is what callers get to see.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeUpstream:
		return "Upstream failure"
	case TypeServer:
		return "Internal error"
	default:
		return "Unknown error"
	}
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
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

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "Internal Server Error", TypeServer, CodeInternal)
}

// NewBadRequest creates a validation error whose message is returned to the caller.
func NewBadRequest(msg string) error {
	return new(nil, msg, TypeValidation, CodeBadRequest)
}

// NewNotFound creates a not-found error with the given message.
func NewNotFound(msg string) error {
	return new(nil, msg, TypeValidation, CodeNotFound)
}

// NewUpstream wraps a failed dependency call. msg is exposed, err is not.
func NewUpstream(err error, msg string) error {
	return new(err, msg, TypeUpstream, CodeUpstream)
}
