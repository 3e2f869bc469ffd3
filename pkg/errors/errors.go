package errors

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status code for this error
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// Code returns the machine-readable error code used in API responses
func (e *ValidationError) Code() string { return "validation_error" }

// GRPCStatus returns the gRPC status for this error
func (e *ValidationError) GRPCStatus() *status.Status {
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

func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

func (e *NotFoundError) Code() string { return "not_found" }

// GRPCStatus returns the gRPC status for this error
func (e *NotFoundError) GRPCStatus() *status.Status {
	return status.New(codes.NotFound, e.Error())
}

// AlreadyExistsError represents a resource already exists error
type AlreadyExistsError struct {
	Resource string
	Message  string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

func (e *AlreadyExistsError) HTTPStatus() int { return http.StatusConflict }

func (e *AlreadyExistsError) Code() string { return "already_exists" }

// GRPCStatus returns the gRPC status for this error
func (e *AlreadyExistsError) GRPCStatus() *status.Status {
	return status.New(codes.AlreadyExists, e.Error())
}

// UnauthorizedError represents a failed credential check. The message is
// returned to clients as-is, so it must not reveal which credential was wrong.
type UnauthorizedError struct {
	Message string
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

// Error implements the error interface
func (e *UnauthorizedError) Error() string { return e.Message }

func (e *UnauthorizedError) HTTPStatus() int { return http.StatusUnauthorized }

func (e *UnauthorizedError) Code() string { return "unauthorized" }

// GRPCStatus returns the gRPC status for this error
func (e *UnauthorizedError) GRPCStatus() *status.Status {
	return status.New(codes.Unauthenticated, e.Message)
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

func (e *InternalError) HTTPStatus() int { return http.StatusInternalServerError }

func (e *InternalError) Code() string { return "internal_error" }

// GRPCStatus returns the gRPC status for this error. The wrapped cause
// stays server-side.
func (e *InternalError) GRPCStatus() *status.Status {
	return status.New(codes.Internal, e.Message)
}

// APIError is implemented by every typed error in this package.
type APIError interface {
	error
	HTTPStatus() int
	Code() string
	GRPCStatus() *status.Status
}

// AsAPIError finds the first APIError in err's chain.
func AsAPIError(err error) (APIError, bool) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err's chain contains a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ToGRPC converts err into a gRPC status error. Untyped errors become
// codes.Internal with a generic message.
func ToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.GRPCStatus().Err()
	}
	return status.Error(codes.Internal, "internal server error")
}
