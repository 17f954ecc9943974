/*
Package cli resolves command lines against a tree of registered commands, and parses typed arguments for them.

There are a few reasonable (IMHO) policies for how this operates.

  - User-visible output should go to STDERR by default. This is supported with a configurable [Printer].
  - This package uses [pflag] for posix style option parsing, but only exact spellings are recognized. No abbreviations.
  - Tokens that don't match a declared spelling aren't errors. They're handed back to the caller as leftovers, which is how command paths and positional arguments are found.
  - Declaration mistakes like two arguments claiming the same spelling fail at registration, not when a user happens to hit them.

# Parsing

A [ParseManager] owns a set of [argument.Argument] values keyed by name, and a [Requirement] describing which of them must be given.
Requirements combine with [All] and [Any], and nest freely.

	m := cli.MustParseManager("cloud server create", args, cli.WithRequired(cli.All{cli.Key("name"), cli.Any{cli.Key("flavor"), cli.Key("image")}}))
	parsed, err := m.Parse(os.Args[1:])

If the requirement isn't met, then help is printed and a [UsageError] is returned.
Help output is generated from the declared arguments and the requirement with [ParseManager.Help].

# Invocation

Invoking a CLI built with [App] always follows this form:

	CLI_NAME [COMMAND...] [ARGS...]

Global arguments like --verbose may appear anywhere. Command arguments follow the command path.
Commands are registered explicitly with [App.Register], so there is no package level state.
Just calling CLI_NAME will print usage information for the tool, and invoking a group prints its subcommands.

NOTE: Commands will respond with usage if they return a [UsageError], like the one returned by [MapArgs].

# Prioritizing Dev UX

Developers want nice things too, especially with tooling they rely on.
This is the motivation for interactive mode.

If your CLI calls [App.RespondInteractive], then you're enabling the use of the [InteractiveFlag] (which can be changed) to enter this mode.
Lines are split with shell quoting rules, and executed in-process.

If you want to work with a nested sub-command the [UseCommand] can be used to push that string of sub-commands to an invocation stack.
Use the [BackCommand] to pop the invocation stack and go back to where you were.

To exit interactive mode, use one of the [InteractiveQuitCommands] at the prompt.

[pflag]: https://github.com/spf13/pflag
*/
package cli
