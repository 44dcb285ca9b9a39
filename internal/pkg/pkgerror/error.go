package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer     Type = iota // Server-side errors (e.g., file system or encoding issues).
	TypeBusiness               // Business logic errors (e.g., domain rule violations).
	TypeValidation             // Validation errors (e.g., input validation failures).
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	CodeInternal     Code = iota // Internal or unspecified error, including I/O failures.
	CodeInvalidInput             // Generic invalid input.
	CodeNullInput                // Absent input table.
	CodeInvalidShape             // Table smaller than the required shape.
	CodeNotFound                 // Resource (session, file path) not found.
	CodeForbidden                // Attempted edit of a non-editable cell.
	CodeConflict                 // Duplicate resource.
	CodeExited                   // Event delivered to an already-exited session.
)

func (c Code) String() string {
	switch c {
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNullInput:
		return "ERROR_CODE_NULL_INPUT"
	case CodeInvalidShape:
		return "ERROR_CODE_INVALID_SHAPE"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeForbidden:
		return "ERROR_CODE_FORBIDDEN"
	case CodeConflict:
		return "ERROR_CODE_CONFLICT"
	case CodeExited:
		return "ERROR_CODE_EXITED"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code.
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
	return "unknown error"
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
	case CodeInvalidInput, CodeNullInput, CodeInvalidShape:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict, CodeExited:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error wrapping err. Used for I/O and other
// infrastructure failures.
func NewServer(err error) error {
	return newError(err, "internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return newError(nil, msg, TypeBusiness, code)
}

// NewInvalidInput creates a validation error wrapping err.
func NewInvalidInput(err error) error {
	return newError(err, "validation error", TypeValidation, CodeInvalidInput)
}

// NewNullInput creates a validation error for an absent input table.
func NewNullInput() error {
	return newError(nil, "input table is required", TypeValidation, CodeNullInput)
}

// NewInvalidShape creates a validation error for a table that does not meet
// the required shape.
func NewInvalidShape(msg string) error {
	return newError(nil, msg, TypeValidation, CodeInvalidShape)
}

// NewAccessViolation creates a business error for an edit attempt on a
// non-editable cell.
func NewAccessViolation(msg string) error {
	return newError(nil, msg, TypeBusiness, CodeForbidden)
}

// HasCode reports whether err is an application Error carrying code.
func HasCode(err error, code Code) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.code == code
}
