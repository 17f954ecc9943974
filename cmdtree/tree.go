// Package cmdtree indexes command paths in a trie, and finds the command a sequence of words refers to.
//
// Paths are written as underscore joined words, like "server_list", or as a list of words.
// Every node on a path is a [Command], and a command is runnable once a handler is bound to it.
// The tree never invokes handlers, it only stores them.
package cmdtree

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/saylorsolutions/cloudcli/argument"
	"github.com/saylorsolutions/cloudcli/assert"
)

// Separator joins path segments into a path string.
const Separator = "_"

var (
	ErrNotFound    = errors.New("command not found")
	ErrDuplicate   = errors.New("command already has a handler")
	ErrInvalidPath = fmt.Errorf("%w: invalid command path", argument.ErrDeclaration)
)

// Tree is a forest of top level command groups, and a flat index of every command by path.
type Tree struct {
	groups map[string]*Command
	all    map[string]*Command
}

func New() *Tree {
	return &Tree{
		groups: map[string]*Command{},
		all:    map[string]*Command{},
	}
}

// SplitPath splits an underscore joined path into segments.
func SplitPath(path string) []string {
	if len(path) == 0 {
		return nil
	}
	return strings.Split(path, Separator)
}

// JoinPath joins segments into a path string.
func JoinPath(segments []string) string {
	return strings.Join(segments, Separator)
}

func validSegment(segment string) bool {
	return len(segment) > 0 &&
		!strings.Contains(segment, Separator) &&
		strings.IndexFunc(segment, unicode.IsSpace) < 0
}

func validateSegments(segments []string) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	for _, segment := range segments {
		if !validSegment(segment) {
			return fmt.Errorf("%w: segment %q of %q must be a non-empty word without '%s'",
				ErrInvalidPath, segment, strings.Join(segments, " "), Separator)
		}
	}
	return nil
}

// AddCommand registers an underscore joined path.
// See [Tree.AddSegments] for details.
func (t *Tree) AddCommand(path, help string, handler any, longHelp ...string) (*Command, error) {
	return t.AddSegments(SplitPath(path), help, handler, longHelp...)
}

// AddSegments registers a path, creating structural commands for any missing ancestors.
//
// Registering an existing path updates its help text, and binds handler if the command isn't runnable yet.
// Binding a handler to a command that already has one returns [ErrDuplicate].
func (t *Tree) AddSegments(segments []string, help string, handler any, longHelp ...string) (*Command, error) {
	if err := validateSegments(segments); err != nil {
		return nil, err
	}
	path := JoinPath(segments)
	if existing, ok := t.all[path]; ok && existing.handler != nil && handler != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, path)
	}
	cmd := t.ensure(segments)
	cmd.help = help
	if len(longHelp) > 0 {
		cmd.longHelp = strings.Join(longHelp, "\n")
	}
	if handler != nil {
		cmd.handler = handler
	}
	assert.TrueFunc("command index mirrors tree", t.consistent)
	return cmd, nil
}

// ensure walks segments, creating structural commands where needed.
func (t *Tree) ensure(segments []string) *Command {
	var parent *Command
	for i := range segments {
		path := JoinPath(segments[:i+1])
		cmd, ok := t.all[path]
		if !ok {
			cmd = newCommand(segments[:i+1])
			t.all[path] = cmd
			if parent == nil {
				t.groups[segments[0]] = cmd
			} else {
				parent.children[segments[i]] = cmd
			}
		}
		parent = cmd
	}
	return parent
}

// FindBestMatch consumes terms as long as they extend a registered path.
// Matching is greedy and never backtracks. If the first term doesn't name a group, then nil and all terms are returned.
func (t *Tree) FindBestMatch(terms []string) (*Command, []string) {
	var (
		matched  *Command
		consumed int
	)
	for i, term := range terms {
		if !validSegment(term) {
			break
		}
		cmd, ok := t.all[JoinPath(terms[:i+1])]
		if !ok {
			break
		}
		matched, consumed = cmd, i+1
	}
	if matched == nil {
		return nil, slices.Clone(terms)
	}
	assert.True("match depth equals consumed terms", len(matched.segments) == consumed)
	return matched, slices.Clone(terms[consumed:])
}

// HasCommand reports whether path has been registered.
func (t *Tree) HasCommand(path string) bool {
	_, ok := t.all[path]
	return ok
}

// GetCommand returns the command registered at path, or [ErrNotFound].
func (t *Tree) GetCommand(path string) (*Command, error) {
	cmd, ok := t.all[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return cmd, nil
}

// Groups returns the top level commands, sorted by name.
func (t *Tree) Groups() []*Command {
	names := slices.Sorted(maps.Keys(t.groups))
	groups := make([]*Command, len(names))
	for i, name := range names {
		groups[i] = t.groups[name]
	}
	return groups
}

// SubNames returns the names of the immediate children of path, or the top level group names if path is empty.
func (t *Tree) SubNames(path string) ([]string, error) {
	if len(path) == 0 {
		return slices.Sorted(maps.Keys(t.groups)), nil
	}
	cmd, err := t.GetCommand(path)
	if err != nil {
		return nil, err
	}
	return cmd.SubNames(), nil
}

// GetSubcommands returns the immediate children of path, or the top level groups if path is empty.
func (t *Tree) GetSubcommands(path string) ([]*Command, error) {
	if len(path) == 0 {
		return t.Groups(), nil
	}
	cmd, err := t.GetCommand(path)
	if err != nil {
		return nil, err
	}
	return cmd.Subcommands(), nil
}

// Len is the number of registered commands, structural or runnable.
func (t *Tree) Len() int {
	return len(t.all)
}

// All iterates every command depth-first, with groups and children in name order.
func (t *Tree) All() iter.Seq[*Command] {
	return func(yield func(*Command) bool) {
		for _, group := range t.Groups() {
			if !group.walk(yield) {
				return
			}
		}
	}
}

// AddTree merges every command of other into t.
// Help text already present in t is kept, and handlers are copied to commands that don't have one.
// If both trees bind a handler to the same path then [ErrDuplicate] is returned, and t is left unchanged.
func (t *Tree) AddTree(other *Tree) error {
	if other == nil {
		return nil
	}
	collector := assert.CollectErrors("; ")
	for path, src := range other.all {
		if dst, ok := t.all[path]; ok && dst.handler != nil && src.handler != nil {
			collector.Add(fmt.Errorf("%w: %s", ErrDuplicate, path))
		}
	}
	if err := collector.Result(); err != nil {
		return err
	}
	for src := range other.All() {
		dst := t.ensure(src.segments)
		if len(dst.help) == 0 {
			dst.help = src.help
		}
		if len(dst.longHelp) == 0 {
			dst.longHelp = src.longHelp
		}
		if dst.handler == nil {
			dst.handler = src.handler
		}
	}
	assert.TrueFunc("command index mirrors tree", t.consistent)
	return nil
}

// consistent checks that the flat index holds exactly the commands reachable from the groups.
func (t *Tree) consistent() bool {
	reachable := 0
	for _, group := range t.groups {
		reachable += group.count()
	}
	if reachable != len(t.all) {
		return false
	}
	for cmd := range t.All() {
		if t.all[cmd.Path()] != cmd {
			return false
		}
	}
	return true
}
