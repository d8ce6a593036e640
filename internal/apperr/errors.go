// Package apperr defines the error taxonomy shared by the stores, the domain
// services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Code categorizes an application error.
type Code string

const (
	// CodeNotFound indicates a referenced job, category, question or other row does not exist.
	CodeNotFound Code = "not_found"
	// CodeIntegrityViolation indicates a write would break the category/question/job ownership invariants.
	CodeIntegrityViolation Code = "integrity_violation"
	// CodeTransactionFailure indicates a storage write failed mid-operation and was rolled back.
	CodeTransactionFailure Code = "transaction_failure"
	// CodeValidation indicates invalid input.
	CodeValidation Code = "validation"
	// CodeConflict indicates a uniqueness conflict.
	CodeConflict Code = "conflict"
	// CodeUnauthorized indicates missing or invalid credentials.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden indicates the caller's role may not perform the operation.
	CodeForbidden Code = "forbidden"
	// CodeInternal is everything else.
	CodeInternal Code = "internal"
)

// AppError is a structured error with a code, a caller-safe message and an
// optional cause. It supports errors.Is and errors.As through Unwrap.
type AppError struct {
	Code    Code
	Message string
	Field   string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func IntegrityViolation(message string) *AppError {
	return &AppError{Code: CodeIntegrityViolation, Message: message}
}

func IntegrityViolationf(format string, args ...any) *AppError {
	return &AppError{Code: CodeIntegrityViolation, Message: fmt.Sprintf(format, args...)}
}

// TransactionFailure wraps a storage failure that aborted a multi-row write.
func TransactionFailure(message string, cause error) *AppError {
	return &AppError{Code: CodeTransactionFailure, Message: message, Cause: cause}
}

func Validation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func ValidationField(field, message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Field: field}
}

func Conflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// Wrap attaches a cause to a new error of the given code.
func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

func IsNotFound(err error) bool {
	return err != nil && CodeOf(err) == CodeNotFound
}

func IsIntegrityViolation(err error) bool {
	return err != nil && CodeOf(err) == CodeIntegrityViolation
}

func IsTransactionFailure(err error) bool {
	return err != nil && CodeOf(err) == CodeTransactionFailure
}

func IsValidation(err error) bool {
	return err != nil && CodeOf(err) == CodeValidation
}
