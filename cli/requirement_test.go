package cli

import (
	"testing"

	"github.com/saylorsolutions/cloudcli/structures/set"
	"github.com/stretchr/testify/assert"
)

func TestRequirement_Satisfied(t *testing.T) {
	nested := Any{Key("a"), All{Key("b"), Key("c")}}
	tests := map[string]struct {
		req       Requirement
		supplied  []string
		satisfied bool
	}{
		"Key given":            {req: Key("a"), supplied: []string{"a"}, satisfied: true},
		"Key missing":          {req: Key("a"), supplied: []string{"b"}},
		"All given":            {req: Keys("a", "b"), supplied: []string{"a", "b", "c"}, satisfied: true},
		"All partial":          {req: Keys("a", "b"), supplied: []string{"a"}},
		"Any of keys given":    {req: Any{Key("a"), Key("b")}, supplied: []string{"b"}, satisfied: true},
		"Any of keys missing":  {req: Any{Key("a"), Key("b")}, supplied: []string{"c"}},
		"Empty All":            {req: All{}, satisfied: true},
		"Empty Any":            {req: Any{}},
		"Nested only a":        {req: nested, supplied: []string{"a"}, satisfied: true},
		"Nested only b":        {req: nested, supplied: []string{"b"}},
		"Nested b and c":       {req: nested, supplied: []string{"b", "c"}, satisfied: true},
		"Nested nothing given": {req: nested},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.satisfied, tc.req.Satisfied(set.New(tc.supplied...)))
		})
	}
}

func TestRequirement_Keys(t *testing.T) {
	req := All{Key("name"), Any{Key("flavor"), Key("image"), All{Key("name"), Key("size")}}}
	assert.Equal(t, []string{"name", "flavor", "image", "size"}, req.Keys())
	assert.Empty(t, Any{}.Keys())
	assert.Equal(t, []string{"a"}, Key("a").Keys())
}
