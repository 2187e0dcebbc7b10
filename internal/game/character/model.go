// Package character defines the character variants that take part in combat
// and the pure rules that derive their effective statistics.
package character

import (
	"errors"

	"github.com/cory-johannsen/wasteland/internal/game/inventory"
	"github.com/cory-johannsen/wasteland/internal/game/perk"
	"github.com/cory-johannsen/wasteland/internal/game/tag"
)

// ErrUnknownStat is returned (wrapped) for an attribute, skill or requirement
// name the resolver does not know.
var ErrUnknownStat = errors.New("character: unknown stat")

// ErrNoSkills is returned (wrapped) when a skill is requested for a critter.
var ErrNoSkills = errors.New("character: critters have no skills")

// Attribute names.
const (
	Strength     = "strength"
	Endurance    = "endurance"
	Agility      = "agility"
	Perception   = "perception"
	Intelligence = "intelligence"
)

// Skill names.
const (
	Guns      = "guns"
	Energy    = "energy"
	Melee     = "melee"
	Sneak     = "sneak"
	Security  = "security"
	Mechanics = "mechanics"
	Survival  = "survival"
	Medicine  = "medicine"
)

// AttributeNames lists every attribute in display order.
var AttributeNames = []string{Strength, Endurance, Agility, Perception, Intelligence}

// SkillNames lists every skill in display order.
var SkillNames = []string{Guns, Energy, Melee, Sneak, Security, Mechanics, Survival, Medicine}

// Attributes holds the five base attribute values.
//
// Invariant: every field is >= 0.
type Attributes struct {
	Strength     int `yaml:"strength"`
	Endurance    int `yaml:"endurance"`
	Agility      int `yaml:"agility"`
	Perception   int `yaml:"perception"`
	Intelligence int `yaml:"intelligence"`
}

// Get returns the attribute called name.
func (a *Attributes) Get(name string) (int, bool) {
	p := a.field(name)
	if p == nil {
		return 0, false
	}
	return *p, true
}

func (a *Attributes) field(name string) *int {
	switch name {
	case Strength:
		return &a.Strength
	case Endurance:
		return &a.Endurance
	case Agility:
		return &a.Agility
	case Perception:
		return &a.Perception
	case Intelligence:
		return &a.Intelligence
	}
	return nil
}

// Skills holds the eight base skill values of a human.
//
// Invariant: every field is >= 0.
type Skills struct {
	Guns      int `yaml:"guns"`
	Energy    int `yaml:"energy"`
	Melee     int `yaml:"melee"`
	Sneak     int `yaml:"sneak"`
	Security  int `yaml:"security"`
	Mechanics int `yaml:"mechanics"`
	Survival  int `yaml:"survival"`
	Medicine  int `yaml:"medicine"`
}

// DefaultSkills returns every skill at 1.
func DefaultSkills() Skills {
	return Skills{Guns: 1, Energy: 1, Melee: 1, Sneak: 1, Security: 1, Mechanics: 1, Survival: 1, Medicine: 1}
}

// Get returns the skill called name.
func (s *Skills) Get(name string) (int, bool) {
	switch name {
	case Guns:
		return s.Guns, true
	case Energy:
		return s.Energy, true
	case Melee:
		return s.Melee, true
	case Sneak:
		return s.Sneak, true
	case Security:
		return s.Security, true
	case Mechanics:
		return s.Mechanics, true
	case Survival:
		return s.Survival, true
	case Medicine:
		return s.Medicine, true
	}
	return 0, false
}

// Character is the closed set of character variants: *Human, *Player and *Critter.
type Character interface {
	Base() *Sheet
	isCharacter()
}

// Sheet holds the state shared by every character. Health and ActionPoints are
// current values set by the game loop; everything derived from Attributes is
// computed by a StatResolver and never stored.
type Sheet struct {
	Name         string
	Tags         tag.Set
	Level        int
	Attributes   Attributes
	Health       int
	ActionPoints int
	HealthBonus  int
	Inventory    *inventory.Inventory
	Perks        *perk.List
}

// Base implements Character, returning the shared sheet.
func (s *Sheet) Base() *Sheet { return s }

// Human is a non-player person with skills.
type Human struct {
	Sheet
	Skills Skills
}

func (*Human) isCharacter() {}

// Player is the human controlled by the user.
type Player struct {
	Human
	Experience int
}

// Critter is a creature without skills that awards experience when defeated.
type Critter struct {
	Sheet
	ExpAward int
}

func (*Critter) isCharacter() {}

// SkillsOf returns c's skills, or false for a critter.
func SkillsOf(c Character) (*Skills, bool) {
	switch v := c.(type) {
	case *Player:
		return &v.Skills, true
	case *Human:
		return &v.Skills, true
	}
	return nil, false
}

// IsNil reports whether c is nil or a typed nil pointer.
func IsNil(c Character) bool {
	switch v := c.(type) {
	case nil:
		return true
	case *Human:
		return v == nil
	case *Player:
		return v == nil
	case *Critter:
		return v == nil
	}
	return false
}
