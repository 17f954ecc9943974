package argument

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

var _ Argument = (*Flag)(nil)

// Flag is a boolean option. Its presence on the command line means true.
type Flag struct {
	base
}

// NewFlag declares a boolean option defaulting to false.
func NewFlag(help string, spellings ...string) *Flag {
	f := &Flag{base: newBase(ArityFlag, help, spellings)}
	f.def = false
	return f
}

// Set ignores raw, since a flag carries no payload.
func (f *Flag) Set(_ []string) error {
	f.store(true)
	return nil
}

// Bool returns the current value of the flag.
func (f *Flag) Bool() bool {
	val, _ := f.Value().(bool)
	return val
}

var _ Argument = (*String)(nil)

// String is an option with a single, unvalidated value.
type String struct {
	base
}

func NewString(help string, spellings ...string) *String {
	return &String{base: newBase(AritySingle, help, spellings)}
}

func (s *String) WithDefault(def string) *String {
	s.def = def
	return s
}

func (s *String) Set(raw []string) error {
	val, err := lastValue(raw)
	if err != nil {
		return err
	}
	s.store(val)
	return nil
}

var _ Argument = (*CommaList)(nil)

// CommaList is an option whose single value is a comma separated list.
type CommaList struct {
	base
}

func NewCommaList(help string, spellings ...string) *CommaList {
	return &CommaList{base: newBase(AritySingle, help, spellings)}
}

func (c *CommaList) WithDefault(def ...string) *CommaList {
	c.def = append([]string{}, def...)
	return c
}

// Set splits the raw value on commas. An empty value results in an empty list.
func (c *CommaList) Set(raw []string) error {
	val, err := lastValue(raw)
	if err != nil {
		return err
	}
	if len(val) == 0 {
		c.store([]string{})
		return nil
	}
	c.store(strings.Split(val, ","))
	return nil
}

var _ Argument = (*Repeat)(nil)

// Repeat is an option that may be given more than once, collecting each value in order.
// Every call to Set replaces previously collected values.
type Repeat struct {
	base
}

func NewRepeat(help string, spellings ...string) *Repeat {
	return &Repeat{base: newBase(ArityRepeat, help, spellings)}
}

func (r *Repeat) WithDefault(def ...string) *Repeat {
	r.def = append([]string{}, def...)
	return r
}

func (r *Repeat) Set(raw []string) error {
	r.store(append([]string{}, raw...))
	return nil
}

var _ Argument = (*KeyValue)(nil)

// KeyValue collects repeated KEY=VALUE pairs into a map.
// Values accumulate across calls to Set, and a repeated key overwrites the earlier value.
type KeyValue struct {
	base
	pairs map[string]string
}

func NewKeyValue(help string, spellings ...string) *KeyValue {
	return &KeyValue{base: newBase(ArityRepeat, help, spellings), pairs: map[string]string{}}
}

func (k *KeyValue) WithDefault(def map[string]string) *KeyValue {
	k.def = maps.Clone(def)
	return k
}

func (k *KeyValue) Reset() {
	k.base.Reset()
	k.pairs = map[string]string{}
}

func (k *KeyValue) Set(raw []string) error {
	parsed := make([][2]string, 0, len(raw))
	for _, pair := range raw {
		key, val, found := strings.Cut(pair, "=")
		if !found {
			return Syntax([]string{
				"Pairs must be given as KEY=VALUE",
				"For example: --metadata os=linux",
			}, "missing '=' in %q", pair)
		}
		parsed = append(parsed, [2]string{key, val})
	}
	for _, kv := range parsed {
		k.pairs[kv[0]] = kv[1]
	}
	k.store(maps.Clone(k.pairs))
	return nil
}

func lastValue(raw []string) (string, error) {
	if len(raw) == 0 {
		return "", Syntax(nil, "expected one value")
	}
	return raw[len(raw)-1], nil
}

var (
	ErrNoValue   = errors.New("no value for argument")
	ErrValueType = errors.New("unexpected argument value type")
)

// Values maps argument keys to their resolved, typed values.
type Values map[string]any

// Get retrieves the typed value for key.
// [ErrNoValue] is returned if the key is absent or has no value, and [ErrValueType] is returned if the value isn't a T.
func Get[T any](values Values, key string) (T, error) {
	var mt T
	raw, ok := values[key]
	if !ok || raw == nil {
		return mt, fmt.Errorf("%w: %s", ErrNoValue, key)
	}
	val, ok := raw.(T)
	if !ok {
		return mt, fmt.Errorf("%w: %s is %T, not %T", ErrValueType, key, raw, mt)
	}
	return val, nil
}

// GetOr retrieves the typed value for key, returning fallback if there is no value or it has a different type.
func GetOr[T any](values Values, key string, fallback T) T {
	val, err := Get[T](values, key)
	if err != nil {
		return fallback
	}
	return val
}

// Has reports whether key resolved to a non-nil value.
func (v Values) Has(key string) bool {
	val, ok := v[key]
	return ok && val != nil
}

// Collect gathers the current value of every argument.
func Collect(args map[string]Argument) Values {
	values := make(Values, len(args))
	for key, arg := range args {
		values[key] = arg.Value()
	}
	return values
}
