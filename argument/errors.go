package argument

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDeclaration = errors.New("invalid declaration") // ErrDeclaration marks a malformed argument or command declaration.
	ErrSyntax      = errors.New("syntax error")        // ErrSyntax marks command line input that can't be parsed.
	ErrInvalid     = errors.New("invalid argument")    // ErrInvalid marks a value that was parsed but failed validation.
)

// Error is a user-facing error produced while declaring or parsing arguments.
// The Details are usage hints that should be shown to the user along with the message.
type Error struct {
	kind    error
	msg     string
	Details []string
}

func (e *Error) Error() string {
	if len(e.msg) == 0 {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.msg
}

// Message returns the error message without the kind prefix.
func (e *Error) Message() string {
	return e.msg
}

// Unwrap allows matching an [Error] against [ErrDeclaration], [ErrSyntax], or [ErrInvalid] with [errors.Is].
func (e *Error) Unwrap() error {
	return e.kind
}

// Render formats the message and every detail line, one per line.
func (e *Error) Render() string {
	var buf strings.Builder
	buf.WriteString(e.Error())
	for _, detail := range e.Details {
		buf.WriteString("\n  ")
		buf.WriteString(detail)
	}
	return buf.String()
}

func newError(kind error, details []string, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), Details: details}
}

// Syntax creates an [Error] matching [ErrSyntax].
func Syntax(details []string, format string, args ...any) *Error {
	return newError(ErrSyntax, details, format, args...)
}

// Invalid creates an [Error] matching [ErrInvalid].
func Invalid(details []string, format string, args ...any) *Error {
	return newError(ErrInvalid, details, format, args...)
}

// Declaration creates an [Error] matching [ErrDeclaration].
func Declaration(format string, args ...any) *Error {
	return newError(ErrDeclaration, nil, format, args...)
}

// DetailsOf extracts usage hints from err if it is, or wraps, an [Error].
func DetailsOf(err error) []string {
	var target *Error
	if errors.As(err, &target) {
		return target.Details
	}
	return nil
}
