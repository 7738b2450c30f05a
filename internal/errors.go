package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration errors. They are reported by New as panics, never per request.
var (
	ErrStoreFrozen         = errors.New("dispatch: controller store is frozen")
	ErrNilConstructor      = errors.New("dispatch: controller constructor is nil")
	ErrDuplicateController = errors.New("dispatch: duplicate controller name")
	ErrModeWithoutAction   = errors.New("dispatch: mode gate requires an action key")
	ErrInvalidStaticConfig = errors.New("dispatch: invalid static files configuration")
	ErrScopeClosed         = errors.New("dispatch: controller scope is closed")
	ErrNilController       = errors.New("dispatch: constructor returned nil controller")
)

// Server errors returned by Run.
var (
	ErrNoSites       = errors.New("dispatch: no sites configured")
	ErrDuplicateSite = errors.New("dispatch: virtual path served by more than one site")
)

// ControllerError wraps a failure raised while resolving, invoking or
// processing the output of one controller.
type ControllerError struct {
	Err        error
	Controller string
}

func (e *ControllerError) Error() string {
	return fmt.Sprintf("controller %q: %v", e.Controller, e.Err)
}

func (e *ControllerError) Unwrap() error {
	return e.Err
}

// HTTPError is an error with a status code and a user-facing message.
type HTTPError struct {
	// Err is logged, never shown.
	Err error

	Message   string
	Title     string
	Detail    string
	RequestID string
	Code      int
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

// NewHTTPError creates an HTTPError. An empty message defaults to the
// status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) { e.Title = title }
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) { e.Detail = detail }
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) { e.RequestID = id }
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) { e.Err = err }
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError returns the first HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// AsControllerError returns the first ControllerError in err's chain, or nil.
func AsControllerError(err error) *ControllerError {
	var ctrlErr *ControllerError
	if errors.As(err, &ctrlErr) {
		return ctrlErr
	}
	return nil
}
