// Package completion generates shell completion scripts for a command tree.
//
// A cobra command tree is built to mirror the registered commands and their argument spellings.
// Cobra is only used for completion here. Dispatch is still done by the cli package.
package completion

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/saylorsolutions/cloudcli/argument"
	"github.com/saylorsolutions/cloudcli/cmdtree"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Shells lists the shells a script can be generated for.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

var ErrShell = errors.New("unsupported shell")

// ArgumentsFunc returns the arguments accepted by cmd, or the global arguments if cmd is nil.
type ArgumentsFunc func(cmd *cmdtree.Command) map[string]argument.Argument

// Build creates a cobra command tree for prog that mirrors tree.
// Global arguments are attached to the root as persistent flags, and each command gets its own arguments as local flags.
func Build(prog string, tree *cmdtree.Tree, argsFor ArgumentsFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           prog,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	if argsFor != nil {
		addFlags(root, root.PersistentFlags(), argsFor(nil))
	}
	for _, group := range tree.Groups() {
		root.AddCommand(build(group, argsFor))
	}
	return root
}

func build(cmd *cmdtree.Command, argsFor ArgumentsFunc) *cobra.Command {
	c := &cobra.Command{
		Use:   cmd.Name(),
		Short: cmd.Help(),
		Long:  cmd.LongHelp(),
	}
	if cmd.Runnable() {
		c.Run = func(*cobra.Command, []string) {}
		if argsFor != nil {
			global := argsFor(nil)
			local := argsFor(cmd)
			for key := range global {
				delete(local, key)
			}
			addFlags(c, c.Flags(), local)
		}
	}
	for _, sub := range cmd.Subcommands() {
		c.AddCommand(build(sub, argsFor))
	}
	return c
}

// addFlags registers the first long spelling of each argument, and its first short spelling as a shorthand.
// An argument with only short spellings is registered under its key.
func addFlags(c *cobra.Command, fs *pflag.FlagSet, args map[string]argument.Argument) {
	for _, key := range slices.Sorted(maps.Keys(args)) {
		arg := args[key]
		name, shorthand := key, ""
		for _, spelling := range arg.Spellings() {
			switch {
			case strings.HasPrefix(spelling, "--"):
				if name == key {
					name = strings.TrimPrefix(spelling, "--")
				}
			case len(shorthand) == 0:
				shorthand = strings.TrimPrefix(spelling, "-")
			}
		}
		if fs.Lookup(name) != nil {
			continue
		}
		if len(shorthand) > 0 && fs.ShorthandLookup(shorthand) != nil {
			shorthand = ""
		}
		switch arg.Arity() {
		case argument.ArityFlag:
			fs.BoolP(name, shorthand, false, arg.Help())
		case argument.ArityRepeat:
			fs.StringArrayP(name, shorthand, nil, arg.Help())
		default:
			fs.StringP(name, shorthand, "", arg.Help())
		}
		if status, ok := arg.(*argument.Status); ok {
			candidates := status.Candidates()
			_ = c.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
				return candidates, cobra.ShellCompDirectiveNoFileComp
			})
		}
	}
}

// Write generates the completion script for shell.
func Write(w io.Writer, root *cobra.Command, shell string) error {
	switch strings.ToLower(shell) {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("%w '%s', expected one of %s", ErrShell, shell, strings.Join(Shells, ", "))
	}
}

// IsRequest reports whether args are a completion request from a generated script.
func IsRequest(args []string) bool {
	return len(args) > 0 && (args[0] == cobra.ShellCompRequestCmd || args[0] == cobra.ShellCompNoDescRequestCmd)
}

// Respond answers a completion request, writing candidates to out.
func Respond(root *cobra.Command, args []string, out io.Writer) error {
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(io.Discard)
	return root.Execute()
}
