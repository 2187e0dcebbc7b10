// Package perk models character perks, player traits and status effects, the
// ordered list of perks active on a character, and the tag-matching rules that
// turn perk effects into numeric bonuses.
package perk

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cory-johannsen/wasteland/internal/game/tag"
)

// Perk is the closed set of perk variants: *CharacterPerk, *PlayerTrait and
// *StatusEffect.
type Perk interface {
	Core() *PerkCore
	isPerk()
}

// PerkCore holds the identity and parsed effects shared by all perks.
type PerkCore struct {
	ID          string
	Tags        tag.Set
	Name        string
	Description string
	Effects     []Effect
}

// Core implements Perk.
func (c *PerkCore) Core() *PerkCore { return c }

// CharacterPerk is a perk a character earns by meeting its requirements.
type CharacterPerk struct {
	PerkCore
	Requirements []Requirement
}

func (*CharacterPerk) isPerk() {}

// PlayerTrait is a trait chosen at character creation. Two traits conflict
// when either names the other in Conflicts.
type PlayerTrait struct {
	PerkCore
	Conflicts []string
}

func (*PlayerTrait) isPerk() {}

// ConflictsWith reports whether t and other may not be active together.
func (t *PlayerTrait) ConflictsWith(other *PlayerTrait) bool {
	return slices.Contains(t.Conflicts, other.ID) || slices.Contains(other.Conflicts, t.ID)
}

// StatusEffect is a temporary or permanent effect applied to a character.
type StatusEffect struct {
	PerkCore
	// Duration is the number of turns remaining; negative means permanent.
	Duration int
}

func (*StatusEffect) isPerk() {}

// Permanent reports whether the effect never expires.
func (s *StatusEffect) Permanent() bool { return s.Duration < 0 }

// Describe renders a one-line summary of p.
func Describe(p Perk) string {
	c := p.Core()
	effects := make([]string, len(c.Effects))
	for i, e := range c.Effects {
		effects[i] = e.String()
	}
	s := fmt.Sprintf("%s: %s [%s]", c.Name, c.Description, strings.Join(effects, "; "))
	if se, ok := p.(*StatusEffect); ok {
		if se.Permanent() {
			return s + " (permanent)"
		}
		return fmt.Sprintf("%s (%d turns)", s, se.Duration)
	}
	return s
}

// isNil reports whether p is nil or a typed nil pointer.
func isNil(p Perk) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *CharacterPerk:
		return v == nil
	case *PlayerTrait:
		return v == nil
	case *StatusEffect:
		return v == nil
	}
	return false
}
