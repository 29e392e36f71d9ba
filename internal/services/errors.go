package services

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine-readable error category returned to clients
type ErrorCode string

const (
	CodeBadRequest   ErrorCode = "BAD_REQUEST"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeRateLimited  ErrorCode = "RATE_LIMITED"
	CodeInternal     ErrorCode = "INTERNAL_SERVER_ERROR"
)

// ServiceError is a business error carrying a code for the transport layer
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// AsServiceError extracts a ServiceError from err's chain
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CodeOf returns err's code, or INTERNAL_SERVER_ERROR for foreign errors
func CodeOf(err error) ErrorCode {
	if se, ok := AsServiceError(err); ok {
		return se.Code
	}
	return CodeInternal
}

func errBadRequest(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeBadRequest, Message: fmt.Sprintf(format, args...)}
}

func errUnauthorized(message string) *ServiceError {
	return &ServiceError{Code: CodeUnauthorized, Message: message}
}

func errForbidden(message string) *ServiceError {
	return &ServiceError{Code: CodeForbidden, Message: message}
}

func errNotFound(what string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: what + " not found"}
}

func errConflict(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func errRateLimited(message string) *ServiceError {
	return &ServiceError{Code: CodeRateLimited, Message: message}
}

func errInternal(message string, err error) *ServiceError {
	return &ServiceError{Code: CodeInternal, Message: message, Err: err}
}
