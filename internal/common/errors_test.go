package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError(t *testing.T) {
	base := NewAppError("CONFIG_ERROR", "bad value", ErrInvalidInput)
	if base.Error() != "CONFIG_ERROR: bad value: invalid input" {
		t.Errorf("Error() = %q", base.Error())
	}
	if !errors.Is(base, ErrInvalidInput) {
		t.Errorf("AppError must unwrap to its cause")
	}

	bare := NewAppError("CONFIG_ERROR", "bad value", nil)
	if bare.Error() != "CONFIG_ERROR: bad value" {
		t.Errorf("Error() without cause = %q", bare.Error())
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Errorf("wrapping nil must stay nil")
	}
	wrapped := WrapError(ErrNoRecords, "extract")
	if !errors.Is(wrapped, ErrNoRecords) {
		t.Errorf("wrapped error lost its sentinel")
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrSourceUnavailable, true},
		{ErrNoRecords, true},
		{ErrBackendUnreachable, true},
		{fmt.Errorf("load document: %w", ErrSourceUnavailable), true},
		{ErrValidation, false},
		{errors.New("plain"), false},
	}
	for _, tt := range tests {
		if got := IsFatal(tt.err); got != tt.want {
			t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
