package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by how the user-facing layer should treat it.
type Kind int

const (
	KindInternal   Kind = iota // unanticipated; logged, generic message shown
	KindValidation             // malformed import table
	KindLookup                 // unknown model or encoding
	KindIO                     // file read/write failure
	KindUserInput              // empty text, no model selected, nothing to save
)

// String returns the human-readable name of the Kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindLookup:
		return "lookup"
	case KindIO:
		return "io"
	case KindUserInput:
		return "user_input"
	default:
		return "internal"
	}
}

// Error is a tagged error. Op names the failing operation, Msg is the
// user-facing text and Err the optional underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind, so errors.Is(err, apperr.Lookup) works
// with the marker values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Markers for errors.Is.
var (
	Internal   = &Error{Kind: KindInternal}
	Validation = &Error{Kind: KindValidation}
	Lookup     = &Error{Kind: KindLookup}
	IO         = &Error{Kind: KindIO}
	UserInput  = &Error{Kind: KindUserInput}
)

// New returns a tagged error without a cause.
func New(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags err with kind. A nil err returns nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the outermost tagged error in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Recoverable reports whether err is an expected failure whose message can be
// shown to the user as-is.
func Recoverable(err error) bool {
	return err != nil && KindOf(err) != KindInternal
}

// Message returns the text shown to the user for err: the tagged message for
// recoverable errors, the raw error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		switch {
		case e.Msg != "" && e.Err != nil:
			return e.Msg + ": " + e.Err.Error()
		case e.Msg != "":
			return e.Msg
		case e.Err != nil:
			return e.Err.Error()
		}
	}
	return err.Error()
}
