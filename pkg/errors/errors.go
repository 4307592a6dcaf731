package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind categorizes an application error independently of the transport.
type Kind string

const (
	KindBadRequest Kind = "bad_request"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal_error"
)

// InternalMessage is the only text an internal failure ever shows to callers,
// on every transport.
const InternalMessage = "An internal error occurred"

// Categorized is implemented by every error type of this package.
type Categorized interface {
	error
	Kind() Kind
	HTTPStatus() int
	GRPCStatus() *status.Status
}

// BadRequestError represents malformed caller input with an optional field name.
type BadRequestError struct {
	Field   string
	Message string
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(field, message string) *BadRequestError {
	return &BadRequestError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *BadRequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *BadRequestError) Kind() Kind { return KindBadRequest }

func (e *BadRequestError) HTTPStatus() int { return http.StatusBadRequest }

// GRPCStatus returns the gRPC status for this error
func (e *BadRequestError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Kind() Kind { return KindNotFound }

func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

// GRPCStatus returns the gRPC status for this error
func (e *NotFoundError) GRPCStatus() *status.Status {
	return status.New(codes.NotFound, e.Error())
}

// ConflictError represents a uniqueness conflict on a resource
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

func (e *ConflictError) Kind() Kind { return KindConflict }

func (e *ConflictError) HTTPStatus() int { return http.StatusConflict }

// GRPCStatus returns the gRPC status for this error
func (e *ConflictError) GRPCStatus() *status.Status {
	return status.New(codes.AlreadyExists, e.Error())
}

// InternalError hides an unexpected failure behind a generic message.
// The cause is kept for logging and errors.Is/As but never rendered by Error.
type InternalError struct {
	Err error
}

// NewInternalError creates a new internal error
func NewInternalError(err error) *InternalError {
	return &InternalError{Err: err}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	return InternalMessage
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

func (e *InternalError) Kind() Kind { return KindInternal }

func (e *InternalError) HTTPStatus() int { return http.StatusInternalServerError }

// GRPCStatus returns the gRPC status for this error
func (e *InternalError) GRPCStatus() *status.Status {
	return status.New(codes.Internal, InternalMessage)
}

// As reports whether err carries one of this package's categorized errors.
func As(err error) (Categorized, bool) {
	var c Categorized
	if stderrors.As(err, &c) {
		return c, true
	}
	return nil, false
}

// IsCategorized reports whether err already belongs to the taxonomy and must
// be propagated unchanged.
func IsCategorized(err error) bool {
	_, ok := As(err)
	return ok
}

// KindOf returns the category of err. Uncategorized errors are internal.
func KindOf(err error) Kind {
	if c, ok := As(err); ok {
		return c.Kind()
	}
	return KindInternal
}

// HTTPStatus maps err to a transport status code.
func HTTPStatus(err error) int {
	if c, ok := As(err); ok {
		return c.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// PassThrough returns err unchanged when it is already categorized and
// wraps it as an InternalError otherwise.
func PassThrough(err error) error {
	if err == nil {
		return nil
	}
	if IsCategorized(err) {
		return err
	}
	return NewInternalError(err)
}
