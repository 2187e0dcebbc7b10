// Package combat resolves the combat values of an attacker against an
// opponent: damage formula, accuracy, damage resistance, effective damage and
// action point cost, plus the resolution of a single hit.
package combat

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/inventory"
	"github.com/cory-johannsen/wasteland/internal/game/perk"
	"github.com/cory-johannsen/wasteland/internal/game/tag"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCharacter is returned when a required character is nil.
	ErrInvalidCharacter = errors.New("combat: invalid character")
	// ErrSameEntity is returned when a character is its own opponent.
	ErrSameEntity = errors.New("combat: character and opponent are the same entity")
	// ErrNoWeaponEquipped is returned when the character has no weapon equipped.
	ErrNoWeaponEquipped = errors.New("combat: no weapon equipped")
	// ErrNoArmorEquipped is returned when the character has no armor equipped.
	ErrNoArmorEquipped = errors.New("combat: no armor equipped")
	// ErrInvalidWeaponType is returned for a ranged weapon that is neither a gun nor an energy weapon.
	ErrInvalidWeaponType = errors.New("combat: invalid weapon type")
	// ErrInsufficientAP is returned when the attacker cannot pay the weapon's AP cost.
	ErrInsufficientAP = errors.New("combat: insufficient action points")
	// ErrOutOfAmmo is returned when a ranged weapon has no round loaded.
	ErrOutOfAmmo = errors.New("combat: out of ammo")
)

// Resolver computes combat values from characters, their equipment and their
// perks. Apart from ResolveHit it never mutates a character.
type Resolver struct {
	stats  *character.StatResolver
	logger *zap.Logger
}

// NewResolver returns a Resolver.
//
// Precondition: stats and logger are non-nil.
func NewResolver(stats *character.StatResolver, logger *zap.Logger) *Resolver {
	return &Resolver{stats: stats, logger: logger}
}

// checkPair validates c and, when present, opp.
func checkPair(c, opp character.Character, oppRequired bool) error {
	if character.IsNil(c) {
		return fmt.Errorf("%w: character is nil", ErrInvalidCharacter)
	}
	if opp == nil {
		if oppRequired {
			return fmt.Errorf("%w: opponent is nil", ErrInvalidCharacter)
		}
		return nil
	}
	if character.IsNil(opp) {
		return fmt.Errorf("%w: opponent is nil", ErrInvalidCharacter)
	}
	if c.Base() == opp.Base() {
		return fmt.Errorf("%w: %q", ErrSameEntity, c.Base().Name)
	}
	return nil
}

func equippedWeapon(c character.Character) (inventory.Weapon, error) {
	inv := c.Base().Inventory
	if inv == nil || inv.Weapon() == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoWeaponEquipped, c.Base().Name)
	}
	return inv.Weapon(), nil
}

func equippedArmor(c character.Character) (*inventory.Armor, error) {
	inv := c.Base().Inventory
	if inv == nil || inv.Armor() == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoArmorEquipped, c.Base().Name)
	}
	return inv.Armor(), nil
}

// bonus returns the perk bonus of c for category on query plus, when opp is
// present, on opp's tags.
func bonus(c, opp character.Character, category string, query tag.Set) int {
	perks := c.Base().Perks
	total := perk.CombatBonus(perks, category, query)
	if opp != nil {
		total += perk.CombatBonus(perks, category, opp.Base().Tags)
	}
	return total
}
