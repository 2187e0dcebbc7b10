package perk

import (
	"fmt"
	"slices"
	"strings"
)

// List is the ordered set of perks active on one character, unique by id.
// It is not safe for concurrent use; the owning character serialises access.
type List struct {
	perks []Perk
}

// NewList creates an empty List.
func NewList() *List {
	return &List{}
}

// Add appends p.
//
// Precondition: p is non-nil.
// Postcondition: Has(p.Core().ID) is true on success. A PlayerTrait that
// conflicts with an active trait, in either direction, is rejected with
// ErrConflictingTrait; a perk whose id is already active with ErrDuplicatePerk.
func (l *List) Add(p Perk) error {
	if isNil(p) {
		return fmt.Errorf("%w: cannot add nil perk", ErrWrongType)
	}
	if t, ok := p.(*PlayerTrait); ok {
		for _, active := range l.perks {
			if at, ok := active.(*PlayerTrait); ok && at.ID != t.ID && t.ConflictsWith(at) {
				return fmt.Errorf("%w: %q conflicts with %q", ErrConflictingTrait, t.ID, at.ID)
			}
		}
	}
	if l.Has(p.Core().ID) {
		return fmt.Errorf("%w: %q", ErrDuplicatePerk, p.Core().ID)
	}
	l.perks = append(l.perks, p)
	return nil
}

// Remove deletes p by id.
func (l *List) Remove(p Perk) error {
	if isNil(p) {
		return fmt.Errorf("%w: cannot remove nil perk", ErrWrongType)
	}
	return l.RemoveID(p.Core().ID)
}

// RemoveID deletes the perk with the given id.
//
// Postcondition: Has(id) is false; returns ErrNotFound if it was not active.
func (l *List) RemoveID(id string) error {
	idx := l.index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	l.perks = slices.Delete(l.perks, idx, idx+1)
	return nil
}

// Get returns the active perk with the given id.
func (l *List) Get(id string) (Perk, bool) {
	if idx := l.index(id); idx >= 0 {
		return l.perks[idx], true
	}
	return nil, false
}

// Has reports whether a perk with id is active.
func (l *List) Has(id string) bool {
	return l.index(id) >= 0
}

// All returns the active perks in insertion order. The slice is a copy; the
// perks are shared.
func (l *List) All() []Perk {
	return slices.Clone(l.perks)
}

// Len returns the number of active perks.
func (l *List) Len() int { return len(l.perks) }

// Tick advances status effects by one turn. Each positive duration is
// decremented; effects that reach zero are removed and their ids returned in
// list order. Permanent effects are untouched.
func (l *List) Tick() []string {
	var expired []string
	kept := l.perks[:0]
	for _, p := range l.perks {
		if se, ok := p.(*StatusEffect); ok && se.Duration > 0 {
			se.Duration--
			if se.Duration == 0 {
				expired = append(expired, se.ID)
				continue
			}
		}
		kept = append(kept, p)
	}
	clear(l.perks[len(kept):])
	l.perks = kept
	return expired
}

// String lists the active perks by name.
func (l *List) String() string {
	var b strings.Builder
	b.WriteString("Perks:")
	if len(l.perks) == 0 {
		b.WriteString("\nNone")
	}
	for i, p := range l.perks {
		fmt.Fprintf(&b, "\n%d: %s", i+1, p.Core().Name)
	}
	return b.String()
}

func (l *List) index(id string) int {
	return slices.IndexFunc(l.perks, func(p Perk) bool { return p.Core().ID == id })
}
