package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/matzehuels/doorpanels/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"invalid door", errors.Field(errors.ErrCodeInvalidDoor, "door.width", "must be positive, got %g", -1.0), exitBadInput},
		{"wrapped validation", fmt.Errorf("load: %w", errors.New(errors.ErrCodeInvalidConfig, "bad toml")), exitBadInput},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), exitInterrupted},
		{"io failure", stderrors.New("disk full"), exitFailure},
		{"internal", errors.New(errors.ErrCodeInternal, "boom"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	err := errors.Field(errors.ErrCodeInvalidDoor, "door.width", "must be positive, got %g", -1.0)
	if got, want := message(err), "INVALID_DOOR: door.width must be positive, got -1"; got != want {
		t.Errorf("message() = %q, want %q", got, want)
	}
	if got := message(stderrors.New("disk full")); got != "disk full" {
		t.Errorf("message(plain) = %q", got)
	}
}
