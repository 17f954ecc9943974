package cli

import (
	"strings"

	"github.com/google/shlex"
	"github.com/saylorsolutions/cloudcli/argument"
)

// SplitLine splits an input line into tokens with shell-like quoting rules.
func SplitLine(line string) ([]string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, argument.Syntax([]string{"Check for unbalanced quotes or a trailing escape"}, "%v", err)
	}
	return tokens, nil
}

// splitLeftovers flattens tokens that contain whitespace, honoring quotes within them.
func splitLeftovers(tokens []string) ([]string, error) {
	unparsed := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !strings.ContainsAny(tok, " \t\n") {
			unparsed = append(unparsed, tok)
			continue
		}
		split, err := SplitLine(tok)
		if err != nil {
			return nil, err
		}
		unparsed = append(unparsed, split...)
	}
	return unparsed, nil
}
