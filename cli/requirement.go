package cli

import (
	"github.com/saylorsolutions/cloudcli/structures/set"
)

// Requirement is a boolean expression over argument keys that must hold for the arguments a user supplied.
// A [Key] is satisfied if that argument was given, [All] requires every element, and [Any] requires at least one.
// These may be nested freely.
type Requirement interface {
	// Satisfied evaluates the requirement against the set of supplied argument keys.
	Satisfied(supplied set.Set[string]) bool
	// Keys returns every argument key referenced by the requirement.
	Keys() []string
}

// Key is satisfied if the named argument was supplied.
type Key string

func (k Key) Satisfied(supplied set.Set[string]) bool {
	return supplied.Has(string(k))
}

func (k Key) Keys() []string {
	return []string{string(k)}
}

// All is satisfied if every element is satisfied.
// An empty All is satisfied.
type All []Requirement

func (a All) Satisfied(supplied set.Set[string]) bool {
	if keys, ok := plainKeys(a); ok && len(keys) > 0 {
		return supplied.HasAll(keys...)
	}
	for _, req := range a {
		if !req.Satisfied(supplied) {
			return false
		}
	}
	return true
}

func (a All) Keys() []string {
	return collectKeys(a)
}

// Any is satisfied if at least one element is satisfied.
// An empty Any is never satisfied.
type Any []Requirement

func (a Any) Satisfied(supplied set.Set[string]) bool {
	if keys, ok := plainKeys(a); ok {
		return supplied.HasAny(keys...)
	}
	for _, req := range a {
		if req.Satisfied(supplied) {
			return true
		}
	}
	return false
}

func (a Any) Keys() []string {
	return collectKeys(a)
}

// Keys creates an [All] requirement from plain argument keys.
func Keys(keys ...string) All {
	all := make(All, len(keys))
	for i, key := range keys {
		all[i] = Key(key)
	}
	return all
}

// plainKeys returns the keys of reqs if every element is a [Key].
func plainKeys(reqs []Requirement) ([]string, bool) {
	keys := make([]string, 0, len(reqs))
	for _, req := range reqs {
		key, ok := req.(Key)
		if !ok {
			return nil, false
		}
		keys = append(keys, string(key))
	}
	return keys, true
}

func collectKeys(reqs []Requirement) []string {
	seen := set.New[string]()
	var keys []string
	for _, req := range reqs {
		if req == nil {
			continue
		}
		for _, key := range req.Keys() {
			if seen.Has(key) {
				continue
			}
			seen.Add(key)
			keys = append(keys, key)
		}
	}
	return keys
}
