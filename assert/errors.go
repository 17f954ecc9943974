package assert

import (
	"fmt"
	"strings"
)

// Collector gathers errors and joins their messages with a separator.
// An empty Collector is not an error, so return [Collector.Result] rather than the Collector itself.
// Collected errors can be matched with [errors.Is] and [errors.As].
type Collector struct {
	errs    []error
	joinStr string
}

// CollectErrors creates a Collector. The separator defaults to a newline.
func CollectErrors(joinString ...string) *Collector {
	joinStr := "\n"
	if len(joinString) > 0 {
		joinStr = joinString[0]
	}
	return &Collector{joinStr: joinStr}
}

// Add records err, ignoring nil.
func (c *Collector) Add(err error) *Collector {
	if err != nil {
		c.errs = append(c.errs, err)
	}
	return c
}

// AddString records an error made with [fmt.Errorf].
func (c *Collector) AddString(msg string, args ...any) *Collector {
	return c.Add(fmt.Errorf(msg, args...))
}

// Result returns nil if nothing was collected.
func (c *Collector) Result() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c
}

func (c *Collector) Error() string {
	msgs := make([]string, len(c.errs))
	for i, err := range c.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, c.joinStr)
}

func (c *Collector) Unwrap() []error {
	return c.errs
}
