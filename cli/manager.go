package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/saylorsolutions/cloudcli/argument"
	"github.com/saylorsolutions/cloudcli/assert"
	"github.com/saylorsolutions/cloudcli/structures/set"
	flag "github.com/spf13/pflag"
)

const (
	DefaultHelpColumn = 24 // DefaultHelpColumn is the column where argument help text starts.
	DefaultHelpWidth  = 80 // DefaultHelpWidth is the total width that help text is wrapped to.
)

// Option configures a [ParseManager].
type Option func(m *ParseManager)

// WithRequired sets the [Requirement] checked after parsing.
func WithRequired(req Requirement) Option {
	return func(m *ParseManager) {
		m.required = req
	}
}

// WithSyntax overrides the generated usage syntax.
func WithSyntax(syntax string) Option {
	return func(m *ParseManager) {
		m.syntax = syntax
	}
}

// WithDescription sets the description shown below the usage line.
func WithDescription(description string) Option {
	return func(m *ParseManager) {
		m.description = description
	}
}

// WithoutRequiredCheck disables enforcement of the [Requirement], which is useful for generating help and
// parsing incomplete input.
func WithoutRequiredCheck() Option {
	return func(m *ParseManager) {
		m.checkRequired = false
	}
}

// WithPrinter sets the [Printer] that help is written to when required arguments are missing.
func WithPrinter(printer *Printer) Option {
	return func(m *ParseManager) {
		if printer != nil {
			m.printer = printer
		}
	}
}

// WithWidth sets the total width of help output.
func WithWidth(width int) Option {
	return func(m *ParseManager) {
		if width > 0 {
			m.width = width
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(m *ParseManager) {
		if log != nil {
			m.log = log
		}
	}
}

// keepLeftovers returns unmatched tokens as given, without splitting them on whitespace.
func keepLeftovers() Option {
	return func(m *ParseManager) {
		m.keepLeftovers = true
	}
}

// forwardDoubleDash keeps a "--" token in the leftovers, for callers that pass them on to another manager.
func forwardDoubleDash() Option {
	return func(m *ParseManager) {
		m.forwardDash = true
	}
}

// Parsed is the result of [ParseManager.Parse].
type Parsed struct {
	Values   argument.Values // Values has the current value of every registered argument.
	Supplied set.Set[string] // Supplied has the keys of arguments given on the command line.
	Unparsed []string        // Unparsed has every token that didn't match a registered argument, in order.
}

// ParseManager resolves command line tokens into typed argument values.
// Only exact spellings are recognized, and tokens that don't match any registered argument are returned to the caller.
type ParseManager struct {
	prog          string
	syntax        string
	description   string
	args          map[string]argument.Argument
	spellings     map[string]string
	names         map[string]string
	shorthands    map[string]string
	aliases       map[string]string
	required      Requirement
	checkRequired bool
	keepLeftovers bool
	forwardDash   bool
	printer       *Printer
	width         int
	log           *slog.Logger
}

// NewParseManager creates a [ParseManager] for the given arguments.
// An error matching [argument.ErrDeclaration] is returned if any argument is malformed, two arguments share a
// spelling, or the [Requirement] references an undeclared argument.
func NewParseManager(prog string, args map[string]argument.Argument, opts ...Option) (*ParseManager, error) {
	m := &ParseManager{
		prog:          prog,
		checkRequired: true,
		printer:       NewPrinter(),
		width:         DefaultHelpWidth,
		log:           discardLogger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.SetArguments(args); err != nil {
		return nil, err
	}
	return m, nil
}

// MustParseManager is like [NewParseManager], but panics if the declaration is invalid.
func MustParseManager(prog string, args map[string]argument.Argument, opts ...Option) *ParseManager {
	return MustGet(NewParseManager(prog, args, opts...))
}

// Arguments returns a copy of the registered arguments.
func (m *ParseManager) Arguments() map[string]argument.Argument {
	return maps.Clone(m.args)
}

// SetArguments replaces the registered arguments.
func (m *ParseManager) SetArguments(args map[string]argument.Argument) error {
	spellings, err := index(args)
	if err != nil {
		return err
	}
	if err := validateRequirement(m.required, args); err != nil {
		return err
	}
	m.args = maps.Clone(args)
	if m.args == nil {
		m.args = map[string]argument.Argument{}
	}
	m.spellings = spellings
	m.names, m.shorthands, m.aliases = flagNames(m.args)
	m.log.Debug("Registered arguments", "prog", m.prog, "count", len(m.args))
	return nil
}

// UpdateArguments merges args into the registered arguments.
// Arguments with the same key are replaced.
func (m *ParseManager) UpdateArguments(args map[string]argument.Argument) error {
	merged := maps.Clone(m.args)
	if merged == nil {
		merged = map[string]argument.Argument{}
	}
	maps.Copy(merged, args)
	return m.SetArguments(merged)
}

// Required returns the configured [Requirement], which may be nil.
func (m *ParseManager) Required() Requirement {
	return m.required
}

func index(args map[string]argument.Argument) (map[string]string, error) {
	collector := assert.CollectErrors("\n")
	spellings := map[string]string{}
	for _, key := range slices.Sorted(maps.Keys(args)) {
		arg := args[key]
		if err := argument.Validate(key, arg); err != nil {
			collector.Add(err)
			continue
		}
		for _, spelling := range arg.Spellings() {
			if owner, ok := spellings[spelling]; ok {
				collector.Add(argument.Declaration("spelling '%s' is claimed by both '%s' and '%s'", spelling, owner, key))
				continue
			}
			spellings[spelling] = key
		}
	}
	if err := collector.Result(); err != nil {
		return nil, err
	}
	return spellings, nil
}

// flagNames picks the flag set name and shorthand of each argument, and maps every other long spelling to the name
// of its argument.
func flagNames(args map[string]argument.Argument) (names, shorthands, aliases map[string]string) {
	names = make(map[string]string, len(args))
	shorthands = make(map[string]string, len(args))
	aliases = map[string]string{}
	for key, arg := range args {
		for _, spelling := range arg.Spellings() {
			if long, ok := strings.CutPrefix(spelling, "--"); ok {
				if _, named := names[key]; !named {
					names[key] = long
				}
				aliases[long] = names[key]
				continue
			}
			if _, ok := shorthands[key]; !ok {
				shorthands[key] = spelling[1:]
			}
		}
		if _, ok := names[key]; !ok {
			names[key] = "\x00" + key
		}
	}
	return names, shorthands, aliases
}

func validateRequirement(req Requirement, args map[string]argument.Argument) error {
	if req == nil {
		return nil
	}
	if hasNil(req) {
		return argument.Declaration("required arguments contain a nil requirement")
	}
	for _, key := range req.Keys() {
		if _, ok := args[key]; !ok {
			return argument.Declaration("required argument '%s' is not declared", key)
		}
	}
	return nil
}

func hasNil(req Requirement) bool {
	var children []Requirement
	switch r := req.(type) {
	case nil:
		return true
	case All:
		children = r
	case Any:
		children = r
	}
	for _, child := range children {
		if hasNil(child) {
			return true
		}
	}
	return false
}

// Parse resolves tokens, or os.Args[1:] if tokens is nil.
//
// Tokens matching a registered spelling are coerced by their [argument.Argument], and all others are returned in
// [Parsed.Unparsed]. If the [Requirement] isn't satisfied then help is printed, and a [UsageError] wrapping
// [argument.ErrSyntax] is returned.
// Values from an earlier call are reset first, so a manager may be reused.
func (m *ParseManager) Parse(tokens []string) (*Parsed, error) {
	if tokens == nil {
		tokens = os.Args[1:]
	}
	for _, arg := range m.args {
		argument.Reset(arg)
	}
	known, leftover, err := m.partition(tokens)
	if err != nil {
		return nil, err
	}
	fs, raws := m.flagSet()
	if err := fs.Parse(known); err != nil {
		return nil, argument.Syntax(nil, "%v", err)
	}
	supplied := set.New[string]()
	for key, name := range m.names {
		if fs.Changed(name) {
			supplied.Add(key)
		}
	}
	if err := m.checkRequirement(supplied); err != nil {
		return nil, err
	}
	for _, key := range set.Sorted(supplied) {
		if err := m.args[key].Set(raws[key].values); err != nil {
			return nil, err
		}
	}
	unparsed := leftover
	if !m.keepLeftovers {
		if unparsed, err = splitLeftovers(leftover); err != nil {
			return nil, err
		}
	}
	m.log.Debug("Parsed arguments", "prog", m.prog, "supplied", set.Sorted(supplied), "unparsed", unparsed)
	return &Parsed{
		Values:   argument.Collect(m.args),
		Supplied: supplied,
		Unparsed: unparsed,
	}, nil
}

func (m *ParseManager) checkRequirement(supplied set.Set[string]) error {
	if m.required == nil || !m.checkRequired || m.required.Satisfied(supplied) {
		return nil
	}
	var details []string
	for _, key := range set.Sorted(set.New(m.required.Keys()...).Difference(supplied)) {
		details = append(details, "Not given: "+argument.Invocation(key, m.args[key]))
	}
	m.PrintHelp(m.printer.Writer())
	return &UsageError{wrapped: argument.Syntax(details, "missing required arguments")}
}

// flagPresent is what the flag set passes to a flag given without a value.
const flagPresent = "\x00present"

// rawValue collects the strings given for one argument so that coercion happens after requirements are checked.
type rawValue struct {
	arity  int
	values []string
}

var _ flag.Value = (*rawValue)(nil)

func (r *rawValue) String() string {
	return strings.Join(r.values, ",")
}

func (r *rawValue) Set(val string) error {
	switch r.arity {
	case argument.ArityFlag:
		if val != flagPresent {
			return errors.New("does not take a value")
		}
		r.values = []string{}
	case argument.ArityRepeat:
		r.values = append(r.values, val)
	default:
		r.values = []string{val}
	}
	return nil
}

func (r *rawValue) Type() string {
	if r.arity == argument.ArityFlag {
		return "bool"
	}
	return "string"
}

// flagSet registers each argument under its first long spelling and its first short spelling.
// Other long spellings are mapped to the registered name when the flag set looks them up.
// An argument without a long spelling is registered under a name that can't be typed, since only its shorthand
// is ever forwarded.
func (m *ParseManager) flagSet() (*flag.FlagSet, map[string]*rawValue) {
	fs := flag.NewFlagSet(m.prog, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SetNormalizeFunc(func(_ *flag.FlagSet, name string) flag.NormalizedName {
		if primary, ok := m.aliases[name]; ok {
			return flag.NormalizedName(primary)
		}
		return flag.NormalizedName(name)
	})
	raws := make(map[string]*rawValue, len(m.args))
	for key, arg := range m.args {
		raw := &rawValue{arity: arg.Arity()}
		raws[key] = raw
		f := fs.VarPF(raw, m.names[key], m.shorthands[key], arg.Help())
		if arg.Arity() == argument.ArityFlag {
			f.NoOptDefVal = flagPresent
		}
	}
	return fs, raws
}

// partition separates tokens with registered spellings from everything else.
// Recognized tokens are forwarded to the flag set along with the value token that follows them, if they need one.
// Short spellings are rewritten to the registered shorthand of their argument.
func (m *ParseManager) partition(tokens []string) (known []string, leftover []string, err error) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		var (
			forward   string
			needsNext bool
		)
		switch {
		case tok == "--":
			if m.forwardDash {
				return known, append(leftover, tokens[i:]...), nil
			}
			return known, append(leftover, tokens[i+1:]...), nil
		case strings.HasPrefix(tok, "--"):
			spelling, _, hasVal := strings.Cut(tok, "=")
			key, ok := m.spellings[spelling]
			if !ok {
				leftover = append(leftover, tok)
				continue
			}
			forward, needsNext = tok, !hasVal && m.args[key].Arity() != argument.ArityFlag
		case len(tok) > 1 && tok[0] == '-':
			var ok bool
			forward, needsNext, ok = m.shortCluster(tok)
			if !ok {
				leftover = append(leftover, tok)
				continue
			}
		default:
			leftover = append(leftover, tok)
			continue
		}
		known = append(known, forward)
		if needsNext && i+1 < len(tokens) {
			if m.isSpelled(tokens[i+1]) {
				return nil, nil, argument.Syntax(nil, "argument %s: expected a value", tok)
			}
			i++
			known = append(known, tokens[i])
		}
	}
	return known, leftover, nil
}

// shortCluster rewrites a short option token like "-vd" or "-nweb" to use registered shorthands.
// Flags may be combined, and the first value-taking spelling consumes the rest of the token as its value.
// If the rest is empty, then the value is the next token.
func (m *ParseManager) shortCluster(tok string) (forward string, needsNext bool, ok bool) {
	var buf strings.Builder
	buf.WriteByte('-')
	body := tok[1:]
	for i, r := range body {
		key, found := m.spellings["-"+string(r)]
		if !found {
			return "", false, false
		}
		buf.WriteString(m.shorthands[key])
		if m.args[key].Arity() != argument.ArityFlag {
			rest := body[i+utf8.RuneLen(r):]
			buf.WriteString(rest)
			return buf.String(), len(rest) == 0, true
		}
	}
	return buf.String(), false, true
}

func (m *ParseManager) isSpelled(tok string) bool {
	spelling, _, _ := strings.Cut(tok, "=")
	if _, ok := m.spellings[spelling]; ok {
		return true
	}
	if len(tok) > 1 && tok[0] == '-' && tok[1] != '-' {
		r, _ := utf8.DecodeRuneInString(tok[1:])
		_, ok := m.spellings["-"+string(r)]
		return ok
	}
	return false
}

// PrintHelp writes help text to out.
func (m *ParseManager) PrintHelp(out io.Writer) {
	_, _ = fmt.Fprint(out, m.Help())
}
