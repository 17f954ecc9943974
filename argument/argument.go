// Package argument declares the named, typed options a command accepts.
//
// Each [Argument] knows how many values it consumes, how it may be spelled on the command line, and how to coerce
// the raw strings it receives into a typed value. Arguments are declared once, and their value is set once per
// invocation by a parser such as [github.com/saylorsolutions/cloudcli/cli.ParseManager].
package argument

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/saylorsolutions/cloudcli/assert"
)

const (
	ArityFlag   = 0  // ArityFlag arguments take no value, presence means true.
	AritySingle = 1  // AritySingle arguments take exactly one value.
	ArityRepeat = -1 // ArityRepeat arguments may be given many times, and values are collected.
)

// Argument is one named, parseable command line option.
type Argument interface {
	// Arity reports how many values the argument consumes: [ArityFlag], [AritySingle], or [ArityRepeat].
	Arity() int
	// Help is the human-readable description shown in help output.
	Help() string
	// Spellings are the ways the argument may be written, like "-s" or "--size".
	Spellings() []string
	// Default is the value reported before Set is called.
	Default() any
	// Value returns the set value, or Default if Set has not been called.
	Value() any
	// Set coerces raw command line values. Flags receive an empty slice.
	Set(raw []string) error
	// IsSet reports whether Set has been called successfully.
	IsSet() bool
}

// Resetter is implemented by arguments that can forget the values of a previous parse.
// All arguments in this package implement it.
type Resetter interface {
	Reset()
}

// Reset calls [Resetter.Reset] if arg implements it.
func Reset(arg Argument) {
	if r, ok := arg.(Resetter); ok {
		r.Reset()
	}
}

type base struct {
	arity     int
	help      string
	spellings []string
	def       any
	value     any
	set       bool
}

func newBase(arity int, help string, spellings []string) base {
	return base{arity: arity, help: help, spellings: append([]string(nil), spellings...)}
}

func (b *base) Arity() int          { return b.arity }
func (b *base) Help() string        { return b.help }
func (b *base) Spellings() []string { return append([]string(nil), b.spellings...) }
func (b *base) Default() any        { return b.def }
func (b *base) IsSet() bool         { return b.set }

func (b *base) Value() any {
	if b.set {
		return b.value
	}
	return b.def
}

// Reset forgets a previous Set, so the argument reports its default again.
func (b *base) Reset() {
	b.value = nil
	b.set = false
}

func (b *base) store(val any) {
	b.value = val
	b.set = true
}

var (
	keyPattern      = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	longPattern     = regexp.MustCompile(`^--[^\s=-][^\s=]*$`)
	shortPattern    = regexp.MustCompile(`^-[!-,.-<>-~]$`) // one printable ASCII character other than '-' or '='
	validatorOnce   sync.Once
	declarationRule *validator.Validate
)

type declaration struct {
	Key       string   `validate:"required,argkey"`
	Arity     int      `validate:"min=-1,max=1"`
	Spellings []string `validate:"required,min=1,unique,dive,spelling"`
}

func declarationValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("spelling", func(fl validator.FieldLevel) bool {
			return IsSpelling(fl.Field().String())
		})
		_ = v.RegisterValidation("argkey", func(fl validator.FieldLevel) bool {
			return keyPattern.MatchString(fl.Field().String())
		})
		declarationRule = v
	})
	return declarationRule
}

// IsSpelling reports whether s is a valid option spelling.
// Short spellings are a dash followed by one ASCII character, and long spellings are two dashes followed by a name.
// Neither may contain whitespace or '='.
func IsSpelling(s string) bool {
	return shortPattern.MatchString(s) || longPattern.MatchString(s)
}

// Validate checks the declaration of an argument that will be registered under key.
// All problems are reported together in an error matching [ErrDeclaration].
func Validate(key string, arg Argument) error {
	if arg == nil {
		return Declaration("argument '%s' is nil", key)
	}
	decl := declaration{Key: key, Arity: arg.Arity(), Spellings: arg.Spellings()}
	err := declarationValidator().Struct(decl)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Declaration("argument '%s': %v", key, err)
	}
	collector := assert.CollectErrors("; ")
	for _, fe := range verrs {
		switch fe.StructField() {
		case "Key":
			collector.AddString("key '%s' must be alphanumeric and may contain '-' or '_'", key)
		case "Arity":
			collector.AddString("arity %d is not one of 0, 1, or -1", decl.Arity)
		default:
			switch fe.Tag() {
			case "unique":
				collector.AddString("spellings must be unique")
			case "spelling":
				collector.AddString("spelling %q must be '-x' with an ASCII x, or '--name' without whitespace", fe.Value())
			default:
				collector.AddString("at least one spelling is required")
			}
		}
	}
	return Declaration("argument '%s': %v", key, collector.Result())
}

// Placeholder renders the metavariable shown after a value-taking spelling in help output.
func Placeholder(key string, arg Argument) string {
	switch arg.Arity() {
	case ArityFlag:
		return ""
	default:
		if _, ok := arg.(*KeyValue); ok {
			return "KEY=VALUE"
		}
		return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	}
}

// Invocation renders the spellings of an argument the way a user would type them.
func Invocation(key string, arg Argument) string {
	spelled := strings.Join(arg.Spellings(), ", ")
	if placeholder := Placeholder(key, arg); len(placeholder) > 0 {
		return fmt.Sprintf("%s %s", spelled, placeholder)
	}
	return spelled
}
