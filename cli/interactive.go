package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"
)

const (
	UseCommand  = "$use"  // This is used in interactive mode to indicate that a set of sub-commands should be pushed to the invocation stack.
	BackCommand = "$back" // This is used in interactive mode to indicate that the last element on the invocation stack should be popped.
)

var (
	InteractiveFlag         = "-i"                  // InteractiveFlag specifies the flag that the user should pass to trigger [App.RespondInteractive].
	InteractiveQuitCommands = []string{"quit", "x"} // InteractiveQuitCommands is a slice of strings that should escape from interactive mode.
)

// PromptMode controls whether interactive mode prints a prompt before reading each line.
type PromptMode int

const (
	PromptAuto   PromptMode = iota // PromptAuto prints a prompt only when input is a terminal.
	PromptAlways                   // PromptAlways prints a prompt for any input.
	PromptNever                    // PromptNever never prints a prompt.
)

// IsTerminal reports whether r is a file connected to a terminal.
func IsTerminal(r any) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal attached to STDOUT, or fallback if there isn't one.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// RespondInteractive will launch an interactive "shell" version of the [App] if the [InteractiveFlag] is the first argument, indicating that the user is requesting interactive mode.
// Lines are read from in until EOF, one of the [InteractiveQuitCommands], or ctx is done.
// Returns false if interactive mode was not requested by the user.
func (a *App) RespondInteractive(ctx context.Context, args []string, in io.Reader, mode PromptMode) bool {
	if len(args) == 0 || args[0] != InteractiveFlag {
		return false
	}
	if err := a.Interactive(ctx, in, mode); err != nil && !errors.Is(err, context.Canceled) {
		a.printer.Println("Error running command interactively:", err)
	}
	return true
}

// Interactive reads command lines from in, and executes each in-process with [App.Exec].
//
// If you want to work with a nested sub-command the [UseCommand] can be used to push that string of sub-commands to an invocation stack.
// Use the [BackCommand] to pop the invocation stack and go back to where you were.
// Command errors are printed, and don't end the loop.
func (a *App) Interactive(ctx context.Context, in io.Reader, mode PromptMode) error {
	var (
		commandStack [][]string
		p            = a.printer
		prompt       = mode == PromptAlways || (mode == PromptAuto && IsTerminal(in))
	)
	prefixCommands := func() []string {
		if len(commandStack) == 0 {
			return nil
		}
		return commandStack[len(commandStack)-1]
	}
	scanner := bufio.NewScanner(in)
	p.Printf(`Running '%s' interactively. Enter %s to exit.
Use the %s command with one or more sub-commands to push them to the execution stack, and %s to pop and return.
`, a.prog, strings.Join(InteractiveQuitCommands, " or "),
		UseCommand, BackCommand)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompt {
			p.Printf("%s> ", strings.Join(append([]string{a.prog}, prefixCommands()...), " "))
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if slices.Contains(InteractiveQuitCommands, strings.ToLower(line)) {
			return nil
		}
		segments, err := SplitLine(line)
		if err != nil {
			p.Error(err)
			continue
		}
		if len(segments) == 0 {
			continue
		}
		switch segments[0] {
		case UseCommand:
			newStack := append(slices.Clone(prefixCommands()), segments[1:]...)
			if cmd, rest := a.tree.FindBestMatch(newStack); cmd == nil || len(rest) > 0 {
				p.Printf("No command group '%s'\n", strings.Join(newStack, " "))
				continue
			}
			p.Printf("Using '%s'\n", strings.Join(newStack, " "))
			commandStack = append(commandStack, newStack)
			continue
		case BackCommand:
			if len(commandStack) == 0 {
				p.Println("Already at root command")
				continue
			}
			commandStack = commandStack[:len(commandStack)-1]
			continue
		case InteractiveFlag:
			p.Println("Cannot run interactively twice")
			continue
		}
		segments = append(slices.Clone(prefixCommands()), segments...)
		if err := a.Exec(ctx, segments); err != nil {
			p.Error(err)
		}
	}
}
