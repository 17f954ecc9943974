package cmdtree

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Command is one node in a [Tree].
// A Command is runnable if a handler is bound to it, and structural otherwise. Both kinds may have subcommands.
type Command struct {
	segments []string
	help     string
	longHelp string
	handler  any
	children map[string]*Command
}

func newCommand(segments []string) *Command {
	return &Command{
		segments: slices.Clone(segments),
		children: map[string]*Command{},
	}
}

// Path is the full, underscore joined path of the command, like "server_list".
func (c *Command) Path() string {
	return strings.Join(c.segments, Separator)
}

// Segments returns the path of the command as a list of words.
func (c *Command) Segments() []string {
	return slices.Clone(c.segments)
}

// Name is the last segment of the path.
func (c *Command) Name() string {
	return c.segments[len(c.segments)-1]
}

// ParentPath is the path of the parent command, or an empty string for a top level group.
func (c *Command) ParentPath() string {
	return strings.Join(c.segments[:len(c.segments)-1], Separator)
}

func (c *Command) Help() string     { return c.help }
func (c *Command) LongHelp() string { return c.longHelp }

// Handler returns whatever was bound to the command, which is nil for structural commands.
func (c *Command) Handler() any {
	return c.handler
}

// Runnable reports whether a handler is bound to the command.
func (c *Command) Runnable() bool {
	return c.handler != nil
}

// Subcommand returns the immediate child with the given name.
func (c *Command) Subcommand(name string) (*Command, bool) {
	child, ok := c.children[name]
	return child, ok
}

// HasSubcommands reports whether the command has any children.
func (c *Command) HasSubcommands() bool {
	return len(c.children) > 0
}

// SubNames returns the names of immediate children, sorted.
func (c *Command) SubNames() []string {
	return slices.Sorted(maps.Keys(c.children))
}

// Subcommands returns immediate children, sorted by name.
func (c *Command) Subcommands() []*Command {
	names := c.SubNames()
	subs := make([]*Command, len(names))
	for i, name := range names {
		subs[i] = c.children[name]
	}
	return subs
}

// ParseOut walks terms through this command's own subtree, stopping at the first term that doesn't name a child.
// The deepest command reached, which is c itself if nothing matched, is returned with the terms that were not consumed.
func (c *Command) ParseOut(terms []string) (*Command, []string) {
	cmd := c
	consumed := 0
	for _, term := range terms {
		child, ok := cmd.children[term]
		if !ok {
			break
		}
		cmd = child
		consumed++
	}
	return cmd, slices.Clone(terms[consumed:])
}

// All iterates the command and its descendants depth-first, visiting children in name order.
func (c *Command) All() iter.Seq[*Command] {
	return func(yield func(*Command) bool) {
		c.walk(yield)
	}
}

func (c *Command) walk(yield func(*Command) bool) bool {
	if !yield(c) {
		return false
	}
	for _, child := range c.Subcommands() {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

func (c *Command) count() int {
	n := 1
	for _, child := range c.children {
		n += child.count()
	}
	return n
}
