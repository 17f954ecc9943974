//go:build !noassert

package assert

import (
	"errors"
	"fmt"
	"runtime"
)

var ErrViolated = errors.New("assertion violated")

// Violation is the panic value of a failed assertion.
type Violation struct {
	Label  string
	Caller string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("assertion '%s' failed at %s", v.Label, v.Caller)
}

func (v *Violation) Unwrap() error {
	return ErrViolated
}

func violated(label string) *Violation {
	caller := "unknown"
	if _, file, line, ok := runtime.Caller(2); ok {
		caller = fmt.Sprintf("'%s#%d'", file, line)
	}
	return &Violation{Label: label, Caller: caller}
}

// True panics with a [*Violation] if result is false.
func True(label string, result bool) {
	if result {
		return
	}
	panic(violated(label))
}

// TrueFunc panics with a [*Violation] if assertion returns false.
// The assertion isn't called when built with the noassert tag, so it may be expensive, like a walk over an index.
func TrueFunc(label string, assertion func() bool) {
	if assertion() {
		return
	}
	panic(violated(label))
}
