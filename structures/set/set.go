// Package set provides a map-backed set type.
package set

import (
	"cmp"
	"maps"
	"slices"
)

// Set formalizes set semantics for a map of comparable keys.
// A nil Set is empty and safe to read.
type Set[T comparable] map[T]struct{}

// New creates a new [Set] from the given values.
// The returned [Set] will have no values if none are given.
func New[T comparable](vals ...T) Set[T] {
	s := Set[T]{}
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// FromKeys creates a [Set] from the keys of a map, like the keys of a set of declared arguments.
func FromKeys[T comparable, E any](vals map[T]E) Set[T] {
	s := Set[T]{}
	for v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Sorted returns the values of the [Set] in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	return slices.Sorted(maps.Keys(s))
}

func (s Set[T]) Add(val T, others ...T) Set[T] {
	if s == nil {
		s = Set[T]{}
	}
	s[val] = struct{}{}
	for _, v := range others {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Has(val T) bool {
	_, ok := s[val]
	return ok
}

// HasAny determines if any of the given values are present in the [Set].
// If the parameter list is empty, then false is returned.
func (s Set[T]) HasAny(values ...T) bool {
	for _, value := range values {
		if s.Has(value) {
			return true
		}
	}
	return false
}

// HasAll determines if all given values are present in the [Set].
// If the parameter list is empty, then false is returned.
func (s Set[T]) HasAll(values ...T) bool {
	if len(values) == 0 {
		return false
	}
	for _, value := range values {
		if !s.Has(value) {
			return false
		}
	}
	return true
}

// Difference returns a new [Set] with the common values between sets removed.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	diff := Set[T]{}
	for v := range s {
		if !other.Has(v) {
			diff.Add(v)
		}
	}
	return diff
}

// Union returns a new [Set] with all values from both sets.
func (s Set[T]) Union(other Set[T]) Set[T] {
	union := maps.Clone(s)
	if union == nil {
		union = Set[T]{}
	}
	maps.Copy(union, other)
	return union
}
