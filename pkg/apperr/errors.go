package apperr

import (
	"errors"
	"fmt"
)

// Domain errors. Every Error wraps exactly one of these, so callers can
// branch with errors.Is regardless of the message.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidState      = errors.New("invalid state")
	ErrNotOwner          = errors.New("not owner")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
)

// Error codes
const (
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInvalidState      = "INVALID_STATE"
	CodeNotOwner          = "NOT_OWNER"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternal          = "INTERNAL"
)

var codes = map[error]string{
	ErrInvalidAmount:     CodeInvalidAmount,
	ErrInsufficientFunds: CodeInsufficientFunds,
	ErrInvalidState:      CodeInvalidState,
	ErrNotOwner:          CodeNotOwner,
	ErrNotFound:          CodeNotFound,
	ErrInvalidInput:      CodeInvalidInput,
}

// Error is a business failure carrying a stable code and a readable message.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{
		Code:    codes[kind],
		Message: fmt.Sprintf(format, args...),
		Err:     kind,
	}
}

func InvalidAmount(format string, args ...any) *Error {
	return newError(ErrInvalidAmount, format, args...)
}

func InsufficientFunds(format string, args ...any) *Error {
	return newError(ErrInsufficientFunds, format, args...)
}

func InvalidState(format string, args ...any) *Error {
	return newError(ErrInvalidState, format, args...)
}

func NotOwner(format string, args ...any) *Error {
	return newError(ErrNotOwner, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return newError(ErrNotFound, format, args...)
}

// InvalidInput covers malformed requests that are not amount errors, such as a bad term.
func InvalidInput(format string, args ...any) *Error {
	return newError(ErrInvalidInput, format, args...)
}

// CodeOf returns the code of the first Error in err's chain, or CodeInternal.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return CodeInternal
}
