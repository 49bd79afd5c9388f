package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_WrapSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		sentinel error
		code     string
	}{
		{"invalid amount", InvalidAmount("amount %s", "0"), ErrInvalidAmount, CodeInvalidAmount},
		{"insufficient funds", InsufficientFunds("short by %d", 5), ErrInsufficientFunds, CodeInsufficientFunds},
		{"invalid state", InvalidState("offer is %s", "ACCEPTED"), ErrInvalidState, CodeInvalidState},
		{"not owner", NotOwner("nope"), ErrNotOwner, CodeNotOwner},
		{"not found", NotFound("wallet %s", "x"), ErrNotFound, CodeNotFound},
		{"invalid input", InvalidInput("term %q", "3_YEARS"), ErrInvalidInput, CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.code, CodeOf(tt.err))
		})
	}
}

func TestCodeOf_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("accept offer: %w", InvalidState("offer already accepted"))
	assert.Equal(t, CodeInvalidState, CodeOf(err))
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("db down")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}

func TestError_Message(t *testing.T) {
	err := InsufficientFunds("balance %s < %s", "500.00", "1000.00")
	assert.Equal(t, "INSUFFICIENT_FUNDS: balance 500.00 < 1000.00", err.Error())
}
