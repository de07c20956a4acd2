package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies errors beyond the HTTP status code. Most errors carry no
// kind; the schema kind exists so deployment drift between the service and
// the database surfaces as an actionable message instead of a generic 500.
const (
	KindSchemaMismatch = "SCHEMA_MISMATCH"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func UnprocessableEntity(message string) *AppError {
	return New(http.StatusUnprocessableEntity, message, nil)
}

func ServiceUnavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// SchemaMismatch wraps a database error caused by a missing table or column.
// The client-facing message names the schema problem so operators can tell a
// pending migration apart from an application bug.
func SchemaMismatch(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindSchemaMismatch,
		Message: message,
		Err:     err,
	}
}

func IsSchemaMismatch(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindSchemaMismatch
}
