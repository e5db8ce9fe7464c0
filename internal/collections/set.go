package collections

import (
	"fmt"
	"strings"

	"slices"
)

// Set holds each distinct value of T at most once, backed by a map for
// constant-time membership checks. A map literal works directly as a Set:
//
//	suspended := collections.Set[StageID]{1: {}, 2: {}}
//
// or build one from a list of members with NewSet:
//
//	suspended := collections.NewSet[StageID](1, 2)
type Set[T comparable] map[T]struct{}

// NewSet returns a Set containing members.
func NewSet[T comparable](members ...T) Set[T] {
	s := make(Set[T], len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Has returns true if the item exists in the Set.
func (s Set[T]) Has(value T) bool {
	_, ok := s[value]
	return ok
}

// Add inserts value into the set, returning the same set for chaining.
func (s Set[T]) Add(value T) Set[T] {
	s[value] = struct{}{}
	return s
}

// Remove deletes value from the set if present. Removing an absent value is a no-op.
func (s Set[T]) Remove(value T) {
	delete(s, value)
}

// Len returns the number of members in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// Clone returns a shallow copy of the set. Mutating the clone never affects the receiver.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Union returns a new set containing the members of s and other.
func (s Set[T]) Union(other Set[T]) Set[T] {
	out := s.Clone()
	for v := range other {
		out[v] = struct{}{}
	}
	return out
}

// String renders the set as a sorted, comma-separated list, so that two
// sets with the same members always render identically regardless of Go's
// randomized map iteration order.
func (s Set[T]) String() string {
	rendered := make([]string, 0, len(s))
	for v := range s {
		rendered = append(rendered, fmt.Sprintf("%v", v))
	}
	slices.SortFunc(rendered, strings.Compare)
	return strings.Join(rendered, ", ")
}
