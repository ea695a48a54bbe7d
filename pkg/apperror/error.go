package apperror

import (
	"errors"
	"net/http"

	goerrors "github.com/go-errors/errors"
)

// Kind classifies an AppError independently of its HTTP code.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindUnavailable   Kind = "unavailable"
	KindInternal      Kind = "internal"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	Stack   []byte `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// withStack records where a server-side failure was first observed.
func withStack(e *AppError) *AppError {
	if e.Err != nil {
		var stackErr *goerrors.Error
		if errors.As(e.Err, &stackErr) {
			e.Stack = stackErr.Stack()
			return e
		}
		e.Stack = goerrors.Wrap(e.Err, 2).Stack()
		return e
	}
	e.Stack = goerrors.New(e.Message).Stack()
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

// Validation is BadRequest carrying the individual field messages as the cause.
func Validation(message string, err error) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, err)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindAuthorization, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindAuthorization, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

// Unavailable marks a transient failure of a backing service. Callers may retry.
func Unavailable(err error) *AppError {
	return withStack(New(http.StatusServiceUnavailable, KindUnavailable, "Service temporarily unavailable", err))
}

func Internal(err error) *AppError {
	return withStack(New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err))
}

// KindOf reports the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsRetryable reports whether err is a transient failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == KindUnavailable
}
