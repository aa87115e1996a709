package errors

import (
	"errors"
	"fmt"
)

// Domain errors - Sentinel errors for use with errors.Is()
var (
	ErrNotFound        = errors.New("resource not found")
	ErrBadRequest      = errors.New("bad request")
	ErrConflict        = errors.New("resource already exists")
	ErrInternalServer  = errors.New("internal server error")
	ErrValidation      = errors.New("validation error")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyContent    = errors.New("asset content is empty")
	ErrTruncatedSource = errors.New("preview is truncated and cannot seed an edit")
	ErrSessionHeld     = errors.New("asset already has an active edit session")
	ErrSessionState    = errors.New("operation not allowed in current session state")
	ErrLocalValidation = errors.New("draft failed local validation")
	ErrNotRegenerable  = errors.New("asset type cannot be regenerated")
	ErrUpstream        = errors.New("upstream service error")
	ErrUpstreamShape   = errors.New("upstream response shape not understood")
)

// Custom error type with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructors
func NotFound(msg string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: msg, Err: ErrNotFound}
}

func BadRequest(msg string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: msg, Err: ErrBadRequest}
}

func Conflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Err: ErrConflict}
}

func InternalServer(msg string, err error) *AppError {
	return &AppError{Code: "INTERNAL_SERVER_ERROR", Message: msg, Err: err}
}

func SessionHeld(msg string) *AppError {
	return &AppError{Code: "SESSION_HELD", Message: msg, Err: ErrSessionHeld}
}

func SessionState(msg string) *AppError {
	return &AppError{Code: "SESSION_STATE", Message: msg, Err: ErrSessionState}
}

func LocalValidation(msg string) *AppError {
	return &AppError{Code: "LOCAL_VALIDATION", Message: msg, Err: ErrLocalValidation}
}

func NotRegenerable(msg string) *AppError {
	return &AppError{Code: "NOT_REGENERABLE", Message: msg, Err: ErrNotRegenerable}
}

func Upstream(msg string, err error) *AppError {
	if err == nil {
		err = ErrUpstream
	}
	return &AppError{Code: "UPSTREAM", Message: msg, Err: err}
}
