package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/saylorsolutions/cloudcli/argument"
	"github.com/saylorsolutions/cloudcli/structures/set"
)

// Help renders usage, the description, optional arguments, and required arguments.
// Required arguments are grouped the way the [Requirement] combines them.
func (m *ParseManager) Help() string {
	var sections []string
	sections = append(sections, "usage: "+strings.TrimSpace(m.prog+" "+m.usageSyntax()))
	if len(m.description) > 0 {
		sections = append(sections, strings.Join(wrap(m.description, m.width), "\n"))
	}
	var requiredKeys set.Set[string]
	if m.required != nil {
		requiredKeys = set.New(m.required.Keys()...)
	}

	var optional strings.Builder
	for _, key := range slices.Sorted(maps.Keys(m.args)) {
		if requiredKeys.Has(key) {
			continue
		}
		m.writeOption(&optional, 2, key)
	}
	if optional.Len() > 0 {
		sections = append(sections, "optional arguments:\n"+strings.TrimSuffix(optional.String(), "\n"))
	}

	if m.required != nil && len(requiredKeys) > 0 {
		var required strings.Builder
		m.writeRequirement(&required, m.required, 2)
		sections = append(sections, "required arguments:\n"+strings.TrimSuffix(required.String(), "\n"))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (m *ParseManager) usageSyntax() string {
	if len(m.syntax) > 0 {
		return m.syntax
	}
	var parts []string
	if m.required != nil {
		if req := m.requirementSyntax(m.required, false); len(req) > 0 {
			parts = append(parts, req)
		}
	}
	for key := range m.args {
		if m.required == nil || !slices.Contains(m.required.Keys(), key) {
			parts = append(parts, "[options]")
			break
		}
	}
	return strings.Join(parts, " ")
}

func (m *ParseManager) requirementSyntax(req Requirement, nested bool) string {
	switch r := req.(type) {
	case Key:
		arg := m.args[string(r)]
		first := arg.Spellings()[0]
		if placeholder := argument.Placeholder(string(r), arg); len(placeholder) > 0 {
			return first + " " + placeholder
		}
		return first
	case All:
		parts := m.childSyntax(r)
		joined := strings.Join(parts, " ")
		if nested && len(parts) > 1 {
			return "(" + joined + ")"
		}
		return joined
	case Any:
		parts := m.childSyntax(r)
		if len(parts) == 0 {
			return ""
		}
		return "(" + strings.Join(parts, " | ") + ")"
	default:
		return ""
	}
}

func (m *ParseManager) childSyntax(reqs []Requirement) []string {
	var parts []string
	for _, child := range reqs {
		if syntax := m.requirementSyntax(child, true); len(syntax) > 0 {
			parts = append(parts, syntax)
		}
	}
	return parts
}

func (m *ParseManager) writeRequirement(buf *strings.Builder, req Requirement, indent int) {
	switch r := req.(type) {
	case Key:
		m.writeOption(buf, indent, string(r))
	case All:
		buf.WriteString(strings.Repeat(" ", indent) + "all of the following:\n")
		for _, child := range r {
			m.writeRequirement(buf, child, indent+2)
		}
	case Any:
		buf.WriteString(strings.Repeat(" ", indent) + "at least one of the following:\n")
		for _, child := range r {
			m.writeRequirement(buf, child, indent+2)
		}
	}
}

func (m *ParseManager) writeOption(buf *strings.Builder, indent int, key string) {
	arg := m.args[key]
	writeEntry(buf, indent, argument.Invocation(key, arg), arg.Help(), m.width)
}

// writeEntry writes left, and help text aligned to [DefaultHelpColumn] and wrapped to width.
// A left side too long to leave a two space gap before the help column pushes the help text to the next line.
func writeEntry(buf *strings.Builder, indent int, left, help string, width int) {
	line := strings.Repeat(" ", indent) + left
	lines := wrap(help, max(width-DefaultHelpColumn, 20))
	if len(lines) > 0 && len(line) <= DefaultHelpColumn-2 {
		line += strings.Repeat(" ", DefaultHelpColumn-len(line)) + lines[0]
		lines = lines[1:]
	}
	buf.WriteString(line + "\n")
	for _, l := range lines {
		buf.WriteString(strings.Repeat(" ", DefaultHelpColumn) + l + "\n")
	}
}

func wrap(text string, width int) []string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) == 0 {
		return nil
	}
	wrapped := strings.Split(ansi.Wordwrap(text, width, ""), "\n")
	lines := make([]string, 0, len(wrapped))
	for _, l := range wrapped {
		if l = strings.TrimSpace(l); len(l) > 0 {
			lines = append(lines, l)
		}
	}
	return lines
}
