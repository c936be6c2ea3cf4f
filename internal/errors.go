package internal

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/waypoint/pkg/logger"
)

var (
	// ErrInvalidConfig is returned when routing configuration cannot be used.
	ErrInvalidConfig = errors.New("waypoint: invalid routing configuration")

	// ErrInvalidControllersDir is returned when the controllers directory
	// does not exist or is not a directory.
	ErrInvalidControllersDir = errors.New("waypoint: invalid controllers directory")

	// ErrControllerNotFound is returned when neither the requested controller
	// nor the module's default controller exists.
	ErrControllerNotFound = errors.New("waypoint: controller not found")

	// ErrControllerNotRegistered is returned when a controller file exists
	// but no factory was registered for it.
	ErrControllerNotRegistered = errors.New("waypoint: controller not registered")

	// ErrInvalidController is returned when a controller does not provide its
	// own default action.
	ErrInvalidController = errors.New("waypoint: invalid controller")

	// ErrNotDispatched is returned by routing helpers used outside a
	// dispatched request.
	ErrNotDispatched = errors.New("waypoint: request was not dispatched")
)

// LoggerError marks failures raised by the logging pipeline itself.
// The dispatcher never logs these again.
type LoggerError = logger.Error

// PanicError represents a panic recovered during dispatch.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// IsPanicError returns true if the error chain contains a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// HTTPError is a user-facing failure with the status code to respond with.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Detail is an optional extended description.
	Detail string

	// RequestID is the request tracking ID.
	RequestID string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Detail = detail
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	e := NewHTTPError(http.StatusBadRequest, message)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	e := NewHTTPError(http.StatusNotFound, message)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	e := NewHTTPError(http.StatusInternalServerError, message)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Helper functions for error inspection.

func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// AsHTTPError extracts the HTTPError from the error chain.
// Returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}
