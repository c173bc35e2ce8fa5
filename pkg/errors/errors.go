// Package errors defines the coded errors used around the layout engine.
//
// [github.com/matzehuels/doorpanels/pkg/door] itself never fails: it accepts
// any numbers and reports problems through its result. The errors here belong
// to the layers that refuse input before it reaches the engine (the loader,
// the CLI flags and the preview server) and to the plumbing after it (caches,
// files, renderers).
//
// Every [Error] has a [Code]. Input problems use the INVALID_* family and
// usually name the offending option with the same dotted key a TOML file or
// JSON body would use:
//
//	err := errors.Field(errors.ErrCodeInvalidDoor, "door.width", "must be positive, got %g", w)
//	errors.GetField(err)    // "door.width"
//	errors.UserMessage(err) // "door.width must be positive, got -1"
//
// Failures around the engine wrap their cause:
//
//	errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable error category.
type Code string

// Input codes.
const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDoor       Code = "INVALID_DOOR"
	ErrCodeInvalidSpacing    Code = "INVALID_SPACING"
	ErrCodeInvalidProportion Code = "INVALID_PROPORTION"
	ErrCodeInvalidPeephole   Code = "INVALID_PEEPHOLE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle      Code = "INVALID_STYLE"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
)

// Lookup and internal codes.
const (
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
)

// Validation reports whether c belongs to the INVALID_* family.
func (c Code) Validation() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error carries a code, an optional option key and an optional cause.
type Error struct {
	Code    Code
	Field   string // dotted option key such as "spacing.target_ratio"
	Message string
	Cause   error
}

func (e *Error) Error() string {
	parts := []string{string(e.Code), e.text()}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// text is the message prefixed with the field key, if any.
func (e *Error) text() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Field returns an error about a single option. The message should read as a
// predicate on the key ("must be positive").
func Field(code Code, field, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Field = field
	return e
}

// Wrap returns an error whose cause is err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = err
	return e
}

// find returns the outermost *Error in err's chain.
func find(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	e := find(err)
	return e != nil && e.Code == code
}

// GetCode returns the code of err, or "" for uncoded errors.
func GetCode(err error) Code {
	if e := find(err); e != nil {
		return e.Code
	}
	return ""
}

// GetField returns the option key err refers to, or "".
func GetField(err error) string {
	if e := find(err); e != nil {
		return e.Field
	}
	return ""
}

// UserMessage returns err without its code or cause, suitable for the
// terminal and for API clients. Uncoded errors are returned verbatim.
func UserMessage(err error) string {
	if e := find(err); e != nil {
		return e.text()
	}
	return err.Error()
}

// IsValidation reports whether err carries an INVALID_* code.
func IsValidation(err error) bool {
	return GetCode(err).Validation()
}
