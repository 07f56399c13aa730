package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// LengthError is returned when an identifier length is negative.
type LengthError struct {
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid argument: length %d must not be negative", e.Length)
}

func (e *LengthError) Is(target error) bool { return target == ErrInvalidArgument }

// ColorError is returned when a color value is not a 6-hex-digit color.
type ColorError struct {
	Value string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("invalid argument: color %q is not in #rrggbb form", e.Value)
}

func (e *ColorError) Is(target error) bool { return target == ErrInvalidArgument }

// ClipboardError reports a failed clipboard write. It is never fatal.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard write failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// TransitionError is returned when a control state transition is not allowed.
type TransitionError struct {
	Event   Event
	Current CopyState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}
