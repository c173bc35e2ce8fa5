package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain",
			err:  New(ErrCodeInvalidFormat, "unknown format %q", "pdf"),
			want: `INVALID_FORMAT: unknown format "pdf"`,
		},
		{
			name: "field",
			err:  Field(ErrCodeInvalidDoor, "door.width", "must be positive, got %g", -1.0),
			want: "INVALID_DOOR: door.width must be positive, got -1",
		},
		{
			name: "wrapped",
			err:  Wrap(ErrCodeInvalidConfig, fs.ErrNotExist, "read %s", "door.toml"),
			want: "INVALID_CONFIG: read door.toml: file does not exist",
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

func TestWrapUnwraps(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "open door.toml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
}

func TestAccessorsThroughChain(t *testing.T) {
	inner := Field(ErrCodeInvalidSpacing, "spacing.panel_gap", "cannot be negative, got %g", -2.0)
	outer := fmt.Errorf("load options: %w", inner)

	if !Is(outer, ErrCodeInvalidSpacing) {
		t.Error("Is(outer, INVALID_SPACING) = false")
	}
	if Is(outer, ErrCodeInvalidDoor) {
		t.Error("Is(outer, INVALID_DOOR) = true")
	}
	if got := GetCode(outer); got != ErrCodeInvalidSpacing {
		t.Errorf("GetCode() = %q", got)
	}
	if got := GetField(outer); got != "spacing.panel_gap" {
		t.Errorf("GetField() = %q", got)
	}
	if got := UserMessage(outer); got != "spacing.panel_gap cannot be negative, got -2" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestOutermostCodeWins(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, New(ErrCodeInvalidInput, "inner"), "outer")
	if !Is(err, ErrCodeFileNotFound) {
		t.Error("outer code not matched")
	}
	if Is(err, ErrCodeInvalidInput) {
		t.Error("inner code matched")
	}
}

func TestUncodedErrors(t *testing.T) {
	plain := errors.New("disk full")
	if GetCode(plain) != "" || GetField(plain) != "" {
		t.Errorf("plain error has code %q field %q", GetCode(plain), GetField(plain))
	}
	if UserMessage(plain) != "disk full" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
	if Is(nil, ErrCodeInternal) || GetCode(nil) != "" {
		t.Error("nil error should carry no code")
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeInvalidDoor, true},
		{ErrCodeInvalidPeephole, true},
		{ErrCodeInvalidConfig, true},
		{ErrCodeNotFound, false},
		{ErrCodeInternal, false},
		{ErrCodeUnsupported, false},
	}
	for _, tt := range tests {
		if got := IsValidation(New(tt.code, "x")); got != tt.want {
			t.Errorf("IsValidation(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
	if IsValidation(errors.New("plain")) {
		t.Error("IsValidation(plain) = true")
	}
}
