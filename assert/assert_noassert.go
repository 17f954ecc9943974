//go:build noassert

package assert

import (
	"errors"
	"fmt"
)

var ErrViolated = errors.New("assertion violated")

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

func True(string, bool) {}

func TrueFunc(string, func() bool) {}
