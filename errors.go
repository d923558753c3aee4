// Package tcore is a core (non-binding) implementation of ECMAScript
// Temporal's calendar-, time-zone-, and rounding-aware date/time model:
// an ISO kernel, a 17-variant Calendar abstraction, a Duration and
// rounding engine, a time-zone/disambiguation engine, an RFC 9557
// (IXDTF) parser/formatter, and the PlainDate/PlainTime/.../Instant/
// ZonedDateTime facade types that compose them.
//
// Grounded on go-chrono/chrono's public API shape (LocalDate/LocalTime/
// LocalDateTime/OffsetDateTime/OffsetTime/ZonedDateTime, the panic-on-
// invalid-input `XOf` constructors alongside error-returning
// lower-level functions, and errors.go's single sentinel-error-per-
// condition style), generalized to Temporal's richer value-returning
// error model.
package tcore

import (
	"errors"
	"fmt"

	"github.com/temporal-go/tcore/internal/terr"
)

// ErrorKind tags the category of an Error, mirroring spec.md §7.
type ErrorKind int

const (
	RangeError ErrorKind = iota
	TypeError
	SyntaxError
	AssertError
	GenericError
)

func (k ErrorKind) String() string {
	switch k {
	case RangeError:
		return "RangeError"
	case TypeError:
		return "TypeError"
	case SyntaxError:
		return "SyntaxError"
	case AssertError:
		return "AssertError"
	default:
		return "Error"
	}
}

// Error is the one error type every fallible tcore operation returns.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// As reports whether err is a *tcore.Error, unwrapping as needed, the
// idiom errors.As expects.
func (e *Error) As(target any) bool {
	t, ok := target.(**Error)
	if !ok {
		return false
	}
	*t = e
	return true
}

// wrapInternal converts an *internal/terr.Error (the shared error type
// of every internal package) into the public *Error, preserving its
// kind and message; any other error is wrapped as GenericError.
func wrapInternal(err error) error {
	if err == nil {
		return nil
	}
	var te *terr.Error
	if errors.As(err, &te) {
		return &Error{Kind: ErrorKind(te.Kind), Message: te.Message}
	}
	return &Error{Kind: GenericError, Message: err.Error()}
}

func rangeErrorf(format string, args ...any) error {
	return &Error{Kind: RangeError, Message: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) error {
	return &Error{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}
