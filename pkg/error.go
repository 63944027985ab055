package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Error is an error with an optional wrapped cause and structured logging
// attributes. It implements both error and slog.LogValuer.
//
// Errors created with [NewError] act as sentinels. Every error derived from a
// sentinel through [Error.With], [Error.Wrap], or [Error.Wrapf] still matches
// that sentinel with [errors.Is], as does every sentinel declared with
// [Error.Derive] against its broader class.
type Error struct {
	msg    string
	err    error       // wrapped cause (for errors.Unwrap)
	origin *Error      // sentinel this error was made from
	class  *Error      // broader sentinel this one was derived from
	attrs  []slog.Attr // attributes for structured logging
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.origin = e

	return e
}

// WrapError converts a standard error into an Error.
// If err already contains an Error, that Error is returned as-is.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Derive creates a new sentinel Error that also matches the receiver's
// sentinel (and its classes) with [errors.Is].
func (e *Error) Derive(msg string) *Error {
	d := &Error{msg: msg, class: e.origin}
	d.origin = d

	return d
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was made from, or one of the
// classes that sentinel was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	for s := e.origin; s != nil; s = s.class {
		if s == t {
			return true
		}
	}

	return false
}

// Attrs returns a copy of the structured logging attributes.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	w := *e
	w.err = err

	return &w
}

// Wrapf creates a new Error wrapping a formatted error.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	w := *e
	w.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(w.attrs, e.attrs)
	copy(w.attrs[len(e.attrs):], attrs)

	return &w
}
