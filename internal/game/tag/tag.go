// Package tag implements the free-form tag sets used to classify items,
// perks and characters and to decide which perk effects apply to a query.
package tag

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set is an unordered set of non-empty, whitespace-trimmed tags.
//
// The zero value is an empty set ready for reads; use New or Parse to obtain
// a set that can be written to.
type Set map[string]struct{}

// New returns a Set holding every non-empty trimmed tag in tags.
func New(tags ...string) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Parse splits a comma-delimited tag string such as "weapon, gun, short".
//
// Postcondition: empty elements are dropped; Parse("") returns an empty set.
func Parse(s string) Set {
	return New(strings.Split(s, ",")...)
}

// Has reports whether t is a member of s.
func (s Set) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// HasAny reports whether any of tags is a member of s.
func (s Set) HasAny(tags ...string) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every tag of s is also in other.
// The empty set is a subset of every set.
func (s Set) SubsetOf(other Set) bool {
	if len(s) > len(other) {
		return false
	}
	for t := range s {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// Union returns a new set holding the members of s and of every set in others.
func (s Set) Union(others ...Set) Set {
	out := make(Set, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	for _, o := range others {
		for t := range o {
			out[t] = struct{}{}
		}
	}
	return out
}

// With returns a copy of s extended with tags.
func (s Set) With(tags ...string) Set {
	return s.Union(New(tags...))
}

// Without returns a copy of s with tags removed.
func (s Set) Without(tags ...string) Set {
	out := s.Union()
	for _, t := range tags {
		delete(out, strings.TrimSpace(t))
	}
	return out
}

// Slice returns the members of s in sorted order.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// String renders s as a sorted, comma-delimited list.
func (s Set) String() string {
	return strings.Join(s.Slice(), ", ")
}

// Equal reports whether s and other hold the same members.
func (s Set) Equal(other Set) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}

// UnmarshalYAML accepts either a comma-delimited scalar or a sequence of scalars.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = Parse(node.Value)
		return nil
	case yaml.SequenceNode:
		var tags []string
		if err := node.Decode(&tags); err != nil {
			return fmt.Errorf("tag: decoding sequence: %w", err)
		}
		*s = New(tags...)
		return nil
	default:
		return fmt.Errorf("tag: line %d: expected a string or a list of strings", node.Line)
	}
}

// MarshalYAML renders s as a sorted sequence.
func (s Set) MarshalYAML() (any, error) {
	return s.Slice(), nil
}
