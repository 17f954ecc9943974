package argument

import (
	"time"

	"github.com/araddon/dateparse"
)

const (
	FormattedLayout = "Mon Jan 02 15:04:05 2006"  // FormattedLayout is the fixed layout used by [Date.Formatted].
	ISOLayout       = "2006-01-02T15:04:05-07:00" // ISOLayout is the ISO-8601 layout used by [Date.ISOFormat].
)

var _ Argument = (*Date)(nil)

// Date is an option holding a point in time.
// Most common date and time formats are accepted, and the local time zone is assumed when none is given.
type Date struct {
	base
}

func NewDate(help string, spellings ...string) *Date {
	return &Date{base: newBase(AritySingle, help, spellings)}
}

func (d *Date) WithDefault(def time.Time) *Date {
	d.def = def
	return d
}

func (d *Date) Set(raw []string) error {
	val, err := lastValue(raw)
	if err != nil {
		return err
	}
	parsed, err := dateparse.ParseLocal(val)
	if err != nil {
		return Invalid([]string{
			"Dates may be given in most common formats, for example:",
			"2001-10-02",
			"10/02/2001",
			"2001-10-02T15:04:05+03:00",
			"Tue Oct 02 15:04:05 2001",
		}, "unrecognized date %q", val)
	}
	d.store(parsed)
	return nil
}

// Time returns the current value, and false if there is none.
func (d *Date) Time() (time.Time, bool) {
	val, ok := d.Value().(time.Time)
	return val, ok
}

// Timestamp returns the value as Unix seconds, or 0 if there is no value.
func (d *Date) Timestamp() int64 {
	t, ok := d.Time()
	if !ok {
		return 0
	}
	return t.Unix()
}

// Formatted renders the value with [FormattedLayout], or an empty string if there is no value.
func (d *Date) Formatted() string {
	t, ok := d.Time()
	if !ok {
		return ""
	}
	return t.Format(FormattedLayout)
}

// ISOFormat renders the value with [ISOLayout], or an empty string if there is no value.
func (d *Date) ISOFormat() string {
	t, ok := d.Time()
	if !ok {
		return ""
	}
	return t.Format(ISOLayout)
}
