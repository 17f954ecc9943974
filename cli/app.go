package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/saylorsolutions/cloudcli/argument"
	"github.com/saylorsolutions/cloudcli/cmdtree"
	"github.com/saylorsolutions/cloudcli/structures/set"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrHelp           = errors.New("help requested") // ErrHelp is returned by [App.Resolve] after help has been printed.
)

// Global argument keys registered by [DefaultGlobals].
const (
	HelpKey    = "help"
	VerboseKey = "verbose"
	DebugKey   = "debug"
)

// RunFunc executes a resolved command.
type RunFunc = func(ctx context.Context, inv *Invocation) error

// Definition declares a runnable command.
type Definition struct {
	Help      string // Help is the one line summary shown in command listings.
	LongHelp  string // LongHelp is shown as the description in command help.
	Syntax    string // Syntax overrides the generated usage syntax.
	Arguments func() map[string]argument.Argument
	Required  Requirement
	Run       RunFunc
}

func (d *Definition) arguments() map[string]argument.Argument {
	if d.Arguments == nil {
		return nil
	}
	return d.Arguments()
}

func (d *Definition) description() string {
	if len(d.LongHelp) > 0 {
		return d.LongHelp
	}
	return d.Help
}

// Invocation is a command resolved from user input, ready to run.
type Invocation struct {
	Command  *cmdtree.Command
	Values   argument.Values // Values has global and command argument values.
	Supplied set.Set[string] // Supplied has the keys of arguments given on the command line.
	Args     []string        // Args has positional arguments left after the command path.
	Printer  *Printer
	Log      *slog.Logger
}

// AppOption configures an [App].
type AppOption func(a *App)

// WithGlobals replaces the [DefaultGlobals].
// Global arguments are accepted anywhere on the command line, and are shown in every command's help.
func WithGlobals(globals func() map[string]argument.Argument) AppOption {
	return func(a *App) {
		if globals != nil {
			a.globals = globals
		}
	}
}

// WithAppPrinter sets the [Printer] used for help and errors.
func WithAppPrinter(printer *Printer) AppOption {
	return func(a *App) {
		if printer != nil {
			a.printer = printer
		}
	}
}

// WithAppWidth sets the total width of help output.
func WithAppWidth(width int) AppOption {
	return func(a *App) {
		if width > 0 {
			a.width = width
		}
	}
}

// WithAppLogger sets the logger handed to parsing and to each [Invocation].
func WithAppLogger(log *slog.Logger) AppOption {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithLevel sets a level that is lowered when the verbose or debug global is given.
func WithLevel(level *slog.LevelVar) AppOption {
	return func(a *App) {
		a.level = level
	}
}

// DefaultGlobals declares help, verbose, and debug flags.
func DefaultGlobals() map[string]argument.Argument {
	return map[string]argument.Argument{
		HelpKey:    argument.NewFlag("Show help and exit", "-h", "--help"),
		VerboseKey: argument.NewFlag("More output", "-v", "--verbose"),
		DebugKey:   argument.NewFlag("Include debug output", "-d", "--debug"),
	}
}

// App dispatches command lines to registered [Definition] handlers.
// Commands are registered explicitly, so an App holds no global state.
type App struct {
	prog    string
	tree    *cmdtree.Tree
	globals func() map[string]argument.Argument
	printer *Printer
	width   int
	log     *slog.Logger
	level   *slog.LevelVar
	preExec []PreExec
}

func NewApp(prog string, opts ...AppOption) *App {
	a := &App{
		prog:    prog,
		tree:    cmdtree.New(),
		globals: DefaultGlobals,
		printer: NewPrinter(),
		width:   DefaultHelpWidth,
		log:     discardLogger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Name() string {
	return a.prog
}

// Tree exposes the registered commands.
func (a *App) Tree() *cmdtree.Tree {
	return a.tree
}

func (a *App) Printer() *Printer {
	return a.printer
}

// Group registers a structural command, which lists its subcommands when invoked.
func (a *App) Group(path, help string) error {
	_, err := a.tree.AddCommand(path, help, nil)
	return err
}

// Register binds def to path.
// The arguments of def are validated together with the globals, so a spelling collision is reported here rather
// than when a user invokes the command.
func (a *App) Register(path string, def Definition) error {
	if def.Run == nil {
		return argument.Declaration("command '%s' has no run function", path)
	}
	if _, err := a.commandManager(cmdtree.SplitPath(path), &def, false); err != nil {
		return fmt.Errorf("command '%s': %w", path, err)
	}
	_, err := a.tree.AddCommand(path, def.Help, &def, def.LongHelp)
	return err
}

// MustRegister is like [App.Register], but panics on error.
func (a *App) MustRegister(path string, def Definition) {
	if err := a.Register(path, def); err != nil {
		panic(err)
	}
}

// ArgumentsFor returns fresh global arguments, plus the arguments of cmd if it's runnable.
// A nil cmd returns only the globals.
func (a *App) ArgumentsFor(cmd *cmdtree.Command) map[string]argument.Argument {
	args := a.globals()
	if cmd == nil {
		return args
	}
	if def, ok := cmd.Handler().(*Definition); ok {
		maps.Copy(args, def.arguments())
	}
	return args
}

func (a *App) globalManager() (*ParseManager, error) {
	return NewParseManager(a.prog, a.globals(),
		WithoutRequiredCheck(),
		WithPrinter(a.printer),
		WithWidth(a.width),
		WithLogger(a.log),
		keepLeftovers(),
		forwardDoubleDash(),
	)
}

func (a *App) commandManager(segments []string, def *Definition, helpOnly bool) (*ParseManager, error) {
	opts := []Option{
		WithSyntax(def.Syntax),
		WithDescription(def.description()),
		WithPrinter(a.printer),
		WithWidth(a.width),
		WithLogger(a.log),
		keepLeftovers(),
	}
	if helpOnly {
		opts = append(opts, WithoutRequiredCheck())
	}
	globals := a.globals()
	m, err := NewParseManager(a.prog+" "+strings.Join(segments, " "), globals, opts...)
	if err != nil {
		return nil, err
	}
	args := def.arguments()
	reserved := set.FromKeys(globals)
	for key := range args {
		if reserved.Has(key) {
			return nil, argument.Declaration("argument key '%s' is reserved for a global argument", key)
		}
	}
	if err := m.UpdateArguments(args); err != nil {
		return nil, err
	}
	if def.Required != nil {
		m.required = def.Required
		if err := validateRequirement(def.Required, m.args); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Resolve finds the command named by tokens and parses its arguments.
//
// Global arguments are parsed first, and the remaining tokens are matched against the command tree.
// The tokens left after the command path are parsed with the command's arguments.
// If help was requested, then it's printed and [ErrHelp] is returned.
func (a *App) Resolve(tokens []string) (*Invocation, error) {
	gm, err := a.globalManager()
	if err != nil {
		return nil, err
	}
	globals, err := gm.Parse(tokens)
	if err != nil {
		return nil, err
	}
	a.applyLevel(globals)
	help := globals.Supplied.Has(HelpKey)

	cmd, rest := a.tree.FindBestMatch(globals.Unparsed)
	if cmd == nil {
		if help {
			a.printer.Print(a.Usage(nil))
			return nil, ErrHelp
		}
		if len(rest) == 0 {
			return nil, withUsage(fmt.Errorf("%w: no command given", ErrUnknownCommand), a.Usage(nil))
		}
		return nil, withUsage(fmt.Errorf("%w: %s", ErrUnknownCommand, rest[0]), a.Usage(nil))
	}

	def, ok := cmd.Handler().(*Definition)
	if !ok {
		if help {
			a.printer.Print(a.Usage(cmd))
			return nil, ErrHelp
		}
		name := strings.Join(cmd.Segments(), " ")
		if len(rest) > 0 {
			return nil, withUsage(fmt.Errorf("%w: %s %s", ErrUnknownCommand, name, rest[0]), a.Usage(cmd))
		}
		return nil, withUsage(fmt.Errorf("%w: %s requires a subcommand", ErrUnknownCommand, name), a.Usage(cmd))
	}

	cm, err := a.commandManager(cmd.Segments(), def, help)
	if err != nil {
		return nil, err
	}
	if help {
		cm.PrintHelp(a.printer.Writer())
		return nil, ErrHelp
	}
	parsed, err := cm.Parse(rest)
	if err != nil {
		return nil, err
	}
	values := parsed.Values
	maps.Copy(values, globals.Values)
	supplied := globals.Supplied.Union(parsed.Supplied)
	a.log.Debug("Resolved command", "path", cmd.Path(), "supplied", set.Sorted(supplied), "args", parsed.Unparsed)
	return &Invocation{
		Command:  cmd,
		Values:   values,
		Supplied: supplied,
		Args:     parsed.Unparsed,
		Printer:  a.printer,
		Log:      a.log.With("command", cmd.Path()),
	}, nil
}

func (a *App) applyLevel(globals *Parsed) {
	if a.level == nil {
		return
	}
	switch {
	case globals.Supplied.Has(DebugKey):
		a.level.Set(slog.LevelDebug)
	case globals.Supplied.Has(VerboseKey) && a.level.Level() > slog.LevelInfo:
		a.level.Set(slog.LevelInfo)
	}
}

// Exec resolves tokens, runs each [PreExec], and then runs the command.
// A help request isn't an error.
// If the command returns a [UsageError] without usage text, then the command's help is attached to it.
func (a *App) Exec(ctx context.Context, tokens []string) error {
	inv, err := a.Resolve(tokens)
	if err != nil {
		if errors.Is(err, ErrHelp) {
			return nil
		}
		return err
	}
	if err := a.runPreExec(ctx, inv); err != nil {
		return err
	}
	def := inv.Command.Handler().(*Definition)
	err = def.Run(ctx, inv)
	var usageErr *UsageError
	if errors.As(err, &usageErr) && len(usageErr.usage) == 0 {
		if cm, cerr := a.commandManager(inv.Command.Segments(), def, true); cerr == nil {
			usageErr.usage = cm.Help()
		}
	}
	return err
}

// Main runs [App.Exec] and reports any error with the [Printer], returning a process exit code.
// Errors caused by user input return 2, and all other errors return 1.
func (a *App) Main(ctx context.Context, tokens []string) int {
	err := a.Exec(ctx, tokens)
	if err == nil {
		return 0
	}
	a.printer.Error(err)
	if errors.Is(err, &UsageError{}) || errors.Is(err, argument.ErrSyntax) || errors.Is(err, argument.ErrInvalid) {
		return 2
	}
	return 1
}

// Usage renders the subcommands of cmd, or the top level groups if cmd is nil.
func (a *App) Usage(cmd *cmdtree.Command) string {
	var (
		prog = a.prog
		subs = a.tree.Groups()
		help string
	)
	if cmd != nil {
		prog += " " + strings.Join(cmd.Segments(), " ")
		subs = cmd.Subcommands()
		help = cmd.LongHelp()
		if len(help) == 0 {
			help = cmd.Help()
		}
	}
	sections := []string{"usage: " + prog + " <command> [options]"}
	if len(help) > 0 {
		sections = append(sections, strings.Join(wrap(help, a.width), "\n"))
	}
	if len(subs) > 0 {
		var buf strings.Builder
		for _, sub := range subs {
			writeEntry(&buf, 2, sub.Name(), sub.Help(), a.width)
		}
		sections = append(sections, "commands:\n"+strings.TrimSuffix(buf.String(), "\n"))
	}
	if gm, err := a.globalManager(); err == nil {
		var buf strings.Builder
		for _, key := range slices.Sorted(maps.Keys(gm.args)) {
			gm.writeOption(&buf, 2, key)
		}
		if buf.Len() > 0 {
			sections = append(sections, "global arguments:\n"+strings.TrimSuffix(buf.String(), "\n"))
		}
	}
	return strings.Join(sections, "\n\n") + "\n"
}
