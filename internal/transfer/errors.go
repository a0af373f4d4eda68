// ABOUTME: Typed import failures distinguishing unreadable input from a wrong shape.
// ABOUTME: Each failure carries the user-facing message shown for it.
package transfer

import "errors"

var (
	// ErrParse means the input is not JSON at all.
	ErrParse = errors.New("parse error")
	// ErrInvalidFormat means the input is JSON but not a snapshot document.
	ErrInvalidFormat = errors.New("invalid format")
)

// Kind identifies why an import failed.
type Kind int

const (
	KindParse Kind = iota + 1
	KindInvalidFormat
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindInvalidFormat:
		return "invalid_format"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	if k == KindParse {
		return ErrParse
	}
	return ErrInvalidFormat
}

// Error is an import failure. errors.Is matches it against ErrParse or
// ErrInvalidFormat according to Kind, and against the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Message returns the text to show a user.
func (e *Error) Message() string {
	if e.Kind == KindParse {
		return "Could not read file"
	}
	return "Invalid data format"
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return e.Message() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}
