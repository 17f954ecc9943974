package argument

import (
	"slices"
	"strings"
)

var _ Argument = (*Status)(nil)

// Status is an option restricted to a fixed set of case-insensitive values.
// Values are normalized to upper case.
type Status struct {
	base
	candidates []string
}

// NewStatus declares a status option accepting one of candidates.
// The first candidate is the default unless [Status.WithDefault] is used.
func NewStatus(help string, candidates []string, spellings ...string) *Status {
	s := &Status{base: newBase(AritySingle, help, spellings)}
	for _, candidate := range candidates {
		s.candidates = append(s.candidates, strings.ToUpper(candidate))
	}
	if len(s.candidates) > 0 {
		s.def = s.candidates[0]
	}
	return s
}

func (s *Status) WithDefault(def string) *Status {
	s.def = strings.ToUpper(def)
	return s
}

// Candidates returns the accepted values.
func (s *Status) Candidates() []string {
	return append([]string(nil), s.candidates...)
}

func (s *Status) Set(raw []string) error {
	val, err := lastValue(raw)
	if err != nil {
		return err
	}
	normalized := strings.ToUpper(strings.TrimSpace(val))
	if !slices.Contains(s.candidates, normalized) {
		return Invalid([]string{"Valid values: " + strings.Join(s.candidates, ", ")}, "unknown status %q", val)
	}
	s.store(normalized)
	return nil
}

// Status returns the current value, and false if there is none.
func (s *Status) Status() (string, bool) {
	val, ok := s.Value().(string)
	return val, ok
}
