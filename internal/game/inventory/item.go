// Package inventory models the items a character carries and equips, and the
// equipment state machine that moves them between the carried list and the
// armor and weapon slots.
package inventory

import (
	"fmt"

	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/tag"
)

// Item is the closed set of item variants: *Armor, *MeleeWeapon,
// *RangedWeapon, *Ammo and *Consumable.
type Item interface {
	// Core returns the identity fields shared by every item.
	Core() *ItemCore
	isItem()
}

// Weapon is implemented by *MeleeWeapon and *RangedWeapon.
type Weapon interface {
	Item
	WeaponStats() *WeaponCore
}

// Stackable is implemented by *Ammo and *Consumable.
type Stackable interface {
	Item
	Stack() *StackableCore
}

// ItemCore holds the identity shared by all items.
type ItemCore struct {
	// InstanceID distinguishes two carried items built from the same definition.
	// It is assigned the first time the item is added to an Inventory.
	InstanceID  string
	ID          string
	Tags        tag.Set
	Name        string
	Description string
	Value       int
	Weight      float64
}

// Core implements Item.
func (c *ItemCore) Core() *ItemCore { return c }

// WeaponCore holds the combat fields shared by melee and ranged weapons.
type WeaponCore struct {
	Damage      dice.Formula
	ArmorPen    int
	Accuracy    int
	APCost      int
	StrengthReq int
}

// WeaponStats implements Weapon.
func (w *WeaponCore) WeaponStats() *WeaponCore { return w }

// StackableCore holds a bounded quantity.
//
// Invariant: 0 <= Amount() <= MaxStack.
type StackableCore struct {
	MaxStack int
	amount   int
}

// Stack implements Stackable.
func (s *StackableCore) Stack() *StackableCore { return s }

// Amount returns the current stack size.
func (s *StackableCore) Amount() int { return s.amount }

// Room returns how many more units fit in the stack.
func (s *StackableCore) Room() int { return s.MaxStack - s.amount }

// SetAmount sets the stack size.
//
// Precondition: 0 <= n <= MaxStack.
// Postcondition: Amount() == n on success; unchanged on error.
func (s *StackableCore) SetAmount(n int) error {
	if n < 0 || n > s.MaxStack {
		return fmt.Errorf("inventory: amount %d outside [0, %d]", n, s.MaxStack)
	}
	s.amount = n
	return nil
}

// Armor is a wearable item occupying the armor slot.
type Armor struct {
	ItemCore
	DamageRes int
	RadRes    int
	Evasion   int
}

func (*Armor) isItem() {}

// MeleeWeapon is a weapon that may inflict a status effect on a hit.
type MeleeWeapon struct {
	ItemCore
	WeaponCore
	// Effect is the id of the status-effect perk applied on a successful roll of
	// EffectChance; empty when the weapon has no effect.
	Effect string
	// EffectChance is the chance formula behind EffectChancePercent. Nil means
	// the weapon never applies its effect.
	EffectChance *dice.Formula
}

func (*MeleeWeapon) isItem() {}

// EffectChancePercent returns the probability, in percent, that a hit applies
// Effect: 100 + 10*base of the chance formula, clamped to [0, 100], or 0 when
// the weapon has no chance formula.
func (m *MeleeWeapon) EffectChancePercent() int {
	if m.EffectChance == nil || m.Effect == "" {
		return 0
	}
	return min(100, max(0, 100+10*m.EffectChance.Base))
}

// RangedWeapon is a weapon that fires ammunition from a clip.
//
// Invariant: 0 <= CurrentAmmo() <= ClipSize.
type RangedWeapon struct {
	ItemCore
	WeaponCore
	AmmoType    string
	ClipSize    int
	currentAmmo int
}

func (*RangedWeapon) isItem() {}

// CurrentAmmo returns the number of rounds loaded.
func (r *RangedWeapon) CurrentAmmo() int { return r.currentAmmo }

// SetCurrentAmmo sets the number of loaded rounds.
//
// Precondition: 0 <= n <= ClipSize.
// Postcondition: CurrentAmmo() == n on success; unchanged on error.
func (r *RangedWeapon) SetCurrentAmmo(n int) error {
	if n < 0 || n > r.ClipSize {
		return fmt.Errorf("inventory: ammo %d outside [0, %d]", n, r.ClipSize)
	}
	r.currentAmmo = n
	return nil
}

// Ammo is stackable ammunition whose ID matches a RangedWeapon's AmmoType.
type Ammo struct {
	ItemCore
	StackableCore
}

func (*Ammo) isItem() {}

// Consumable is a stackable item that applies Effect when used.
type Consumable struct {
	ItemCore
	StackableCore
	Effect string
}

func (*Consumable) isItem() {}

// TotalWeight returns the weight of item, multiplied by its amount when stackable.
//
// Precondition: item is non-nil.
func TotalWeight(item Item) float64 {
	w := item.Core().Weight
	if s, ok := item.(Stackable); ok {
		return w * float64(s.Stack().Amount())
	}
	return w
}

// Describe renders a one-line summary of item for listings.
func Describe(item Item) string {
	c := item.Core()
	switch it := item.(type) {
	case *Armor:
		return fmt.Sprintf("%s (dmg res %d, rad res %d, evasion %d)", c.Name, it.DamageRes, it.RadRes, it.Evasion)
	case *MeleeWeapon:
		if p := it.EffectChancePercent(); p > 0 {
			return fmt.Sprintf("%s (%s, %s %d%%)", c.Name, it.Damage, it.Effect, p)
		}
		return fmt.Sprintf("%s (%s)", c.Name, it.Damage)
	case *RangedWeapon:
		return fmt.Sprintf("%s (%s, %d/%d %s)", c.Name, it.Damage, it.currentAmmo, it.ClipSize, it.AmmoType)
	case *Ammo:
		return fmt.Sprintf("%s (%d/%d)", c.Name, it.Amount(), it.MaxStack)
	case *Consumable:
		return fmt.Sprintf("%s (%d/%d)", c.Name, it.Amount(), it.MaxStack)
	default:
		return c.Name
	}
}
