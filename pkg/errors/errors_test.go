package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidSize, "deck size must be at least 1, got %d", 0),
			want: "INVALID_SIZE: deck size must be at least 1, got 0",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInternal, stderrors.New("boom"), "planning failed"),
			want: "INTERNAL_ERROR: planning failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeInvalidSelection, "bad selection")

	if !Is(err, ErrCodeInvalidSelection) {
		t.Error("Is() = false, want true")
	}
	if Is(err, ErrCodeInvalidSize) {
		t.Error("Is() matched wrong code")
	}
	if got := GetCode(err); got != ErrCodeInvalidSelection {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidSelection)
	}

	// Wrapped in a plain error, the code must still be discoverable.
	wrapped := fmt.Errorf("enumerate: %w", err)
	if !Is(wrapped, ErrCodeInvalidSelection) {
		t.Error("Is() did not unwrap")
	}

	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeLayoutOverflow, "canvas too small for 100 items")
	if got := UserMessage(err); strings.Contains(got, "LAYOUT_OVERFLOW") {
		t.Errorf("UserMessage() should not contain the code, got %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateDeckSize(t *testing.T) {
	if err := ValidateDeckSize(1); err != nil {
		t.Errorf("ValidateDeckSize(1) = %v, want nil", err)
	}
	if err := ValidateDeckSize(0); !Is(err, ErrCodeInvalidSize) {
		t.Errorf("ValidateDeckSize(0) = %v, want INVALID_SIZE", err)
	}
}

func TestValidateSelection(t *testing.T) {
	tests := []struct {
		name     string
		n, r     int
		noRepeat bool
		wantCode Code
	}{
		{name: "Valid", n: 3, r: 2, noRepeat: true},
		{name: "ZeroR", n: 3, r: 0, noRepeat: false, wantCode: ErrCodeInvalidSelection},
		{name: "RExceedsNNoRepeat", n: 2, r: 3, noRepeat: true, wantCode: ErrCodeInvalidSelection},
		{name: "RExceedsNWithRepeat", n: 2, r: 3, noRepeat: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelection(tt.n, tt.r, tt.noRepeat)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateSelection = %v, want nil", err)
				}
				return
			}
			if !Is(err, tt.wantCode) {
				t.Errorf("ValidateSelection = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateBounds(t *testing.T) {
	if err := ValidateBounds(800, 600); err != nil {
		t.Errorf("ValidateBounds(800, 600) = %v, want nil", err)
	}
	if err := ValidateBounds(0, 600); !Is(err, ErrCodeInvalidBounds) {
		t.Errorf("ValidateBounds(0, 600) = %v, want INVALID_BOUNDS", err)
	}
}
