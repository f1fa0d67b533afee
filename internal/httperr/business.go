package httperr

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
)

const (
	CodeInvalidDateFormat  = "invalid_date_format"
	CodeInvalidRange       = "invalid_range"
	CodeInvalidRequest     = "invalid_request"
	CodeSlotNotOffered     = "slot_not_offered"
	CodeSlotConflict       = "slot_conflict"
	CodeAlreadyExists      = "already_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeTooManyRequests    = "too_many_requests"
	CodeStoreUnavailable   = "store_unavailable"
)

// BusinessError is a validation, authorization or domain outcome that the
// caller can act on. It is never retried.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func New(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func InvalidDateFormat(message string) error { return New(CodeInvalidDateFormat, message) }
func InvalidRange(message string) error { return New(CodeInvalidRange, message) }
func InvalidRequest(message string) error { return New(CodeInvalidRequest, message) }
func SlotNotOffered(message string) error { return New(CodeSlotNotOffered, message) }
func SlotConflict(message string) error { return New(CodeSlotConflict, message) }
func AlreadyExists(message string) error { return New(CodeAlreadyExists, message) }
func Unauthorized(message string) error { return New(CodeUnauthorized, message) }
func Forbidden(message string) error { return New(CodeForbidden, message) }
func NotFound(message string) error { return New(CodeNotFound, message) }

// AuthFailure carries the same message for unknown users and bad passwords.
func AuthFailure() error {
	return New(CodeInvalidCredentials, "invalid username or password")
}

// StoreError marks a transient infrastructure fault. It is kept apart from
// BusinessError so "no slot" and "system down" never look alike.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store unavailable: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func Unavailable(op string, err error) error {
	return &StoreError{Op: op, Err: pkgerrors.WithStack(err)}
}

func IsUnavailable(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// IsTimeout reports whether a store call ran out of its latency budget.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
