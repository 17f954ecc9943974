package cli

import (
	"fmt"

	"github.com/saylorsolutions/cloudcli/argument"
)

// UsageError is a special purpose error used to signal that usage information should be shown to the user.
// It's returned when required arguments are missing, and may be returned by a [Definition] to reject its input.
type UsageError struct {
	wrapped error
	usage   string
}

func (e *UsageError) Error() string {
	if e.wrapped == nil {
		return "usage error"
	}
	return "usage error: " + e.wrapped.Error()
}

func (e *UsageError) Is(err error) bool {
	_, ok := err.(*UsageError)
	return ok
}

func (e *UsageError) Unwrap() error {
	return e.wrapped
}

// Usage is the help text associated with the error, if any was attached.
func (e *UsageError) Usage() string {
	return e.usage
}

// Details returns the usage hints of the wrapped [argument.Error], if there is one.
func (e *UsageError) Details() []string {
	return argument.DetailsOf(e.wrapped)
}

// NewUsageError is used to create a [UsageError].
// The format and args parameters are passed to [fmt.Errorf] to create the underlying error.
func NewUsageError(format string, args ...any) error {
	return &UsageError{wrapped: fmt.Errorf(format, args...)}
}

func withUsage(err error, usage string) error {
	return &UsageError{wrapped: err, usage: usage}
}
