package codegen

import "fmt"

// Error is the codegen error taxonomy: unknown-variable, immutable-assignment,
// missing-return, type-mismatch, unknown-function/struct/field, and wrapped
// backend-builder failures all surface as one of these, carrying only a
// message; no source position is attached.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func newError(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}
