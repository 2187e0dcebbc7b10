package combat

import (
	"fmt"

	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/inventory"
	"github.com/cory-johannsen/wasteland/internal/game/perk"
	"github.com/cory-johannsen/wasteland/internal/game/tag"
	"go.uber.org/zap"
)

// Damage returns the damage formula of c's equipped weapon with its base raised
// by c's damage perks matching the weapon's tags and, when opp is non-nil, the
// opponent's tags.
//
// Precondition: c is non-nil; opp is nil or a different character.
// Postcondition: Count and Sides equal those of the weapon's formula.
func (r *Resolver) Damage(c, opp character.Character) (dice.Formula, error) {
	if err := checkPair(c, opp, false); err != nil {
		return dice.Formula{}, err
	}
	w, err := equippedWeapon(c)
	if err != nil {
		return dice.Formula{}, err
	}
	f := w.WeaponStats().Damage
	out := f.WithBase(f.Base + bonus(c, opp, perk.CategoryDamage, w.Core().Tags))
	r.logger.Debug("damage resolved",
		zap.String("character", c.Base().Name),
		zap.String("weapon", f.Canonical()),
		zap.String("damage", out.Canonical()),
	)
	return out, nil
}

// Accuracy returns the weapon accuracy of c plus its stat accuracy and its
// accuracy perks matching the weapon's tags and, when opp is non-nil, the
// opponent's tags. Stat accuracy is perception for critters and perception
// plus the melee, guns or energy skill for humans.
//
// Postcondition: returns ErrInvalidWeaponType for a human wielding a ranged
// weapon tagged neither "gun" nor "energy".
func (r *Resolver) Accuracy(c, opp character.Character) (int, error) {
	if err := checkPair(c, opp, false); err != nil {
		return 0, err
	}
	w, err := equippedWeapon(c)
	if err != nil {
		return 0, err
	}
	stat, err := r.statAccuracy(c, w)
	if err != nil {
		return 0, err
	}
	acc := w.WeaponStats().Accuracy + stat + bonus(c, opp, perk.CategoryAccuracy, w.Core().Tags)
	r.logger.Debug("accuracy resolved",
		zap.String("character", c.Base().Name),
		zap.Int("stat", stat),
		zap.Int("accuracy", acc),
	)
	return acc, nil
}

func (r *Resolver) statAccuracy(c character.Character, w inventory.Weapon) (int, error) {
	per, err := r.stats.EffectiveAttribute(c, character.Perception)
	if err != nil {
		return 0, err
	}
	if _, ok := character.SkillsOf(c); !ok {
		return per, nil
	}
	skill, err := weaponSkill(w)
	if err != nil {
		return 0, err
	}
	v, err := r.stats.EffectiveSkill(c, skill)
	if err != nil {
		return 0, err
	}
	return per + v, nil
}

// weaponSkill selects the skill used to aim w.
func weaponSkill(w inventory.Weapon) (string, error) {
	if _, ok := w.(*inventory.MeleeWeapon); ok {
		return character.Melee, nil
	}
	tags := w.Core().Tags
	switch {
	case tags.Has("gun"):
		return character.Guns, nil
	case tags.Has("energy"):
		return character.Energy, nil
	}
	return "", fmt.Errorf("%w: %q tagged %q", ErrInvalidWeaponType, w.Core().ID, tags)
}

// EffectiveAccuracy returns Accuracy(c, opp) minus the evasion of opp.
//
// Precondition: c and opp are distinct non-nil characters.
// Postcondition: result >= 1.
func (r *Resolver) EffectiveAccuracy(c, opp character.Character) (int, error) {
	if err := checkPair(c, opp, true); err != nil {
		return 0, err
	}
	acc, err := r.Accuracy(c, opp)
	if err != nil {
		return 0, err
	}
	return max(1, acc-r.stats.Evasion(opp)), nil
}

// DamageResistance returns the damage resistance of c's equipped armor plus
// its dmg_res perks scoped to "armor" and, when opp is non-nil, to the
// opponent's tags. Perks scoped to any other armor tag do not apply.
func (r *Resolver) DamageResistance(c, opp character.Character) (int, error) {
	if err := checkPair(c, opp, false); err != nil {
		return 0, err
	}
	a, err := equippedArmor(c)
	if err != nil {
		return 0, err
	}
	return a.DamageRes + bonus(c, opp, perk.CategoryDmgRes, tag.New(string(inventory.KindArmor))), nil
}

// EffectiveDamage returns the part of rolled that gets through opp's damage
// resistance once reduced by the armor penetration of c's weapon.
//
// Precondition: c and opp are distinct non-nil characters.
// Postcondition: result >= 0.
func (r *Resolver) EffectiveDamage(c, opp character.Character, rolled int) (int, error) {
	if err := checkPair(c, opp, true); err != nil {
		return 0, err
	}
	w, err := equippedWeapon(c)
	if err != nil {
		return 0, err
	}
	res, err := r.DamageResistance(opp, c)
	if err != nil {
		return 0, err
	}
	return max(0, rolled-max(0, res-w.WeaponStats().ArmorPen)), nil
}

// APCost returns the action point cost of attacking with c's equipped weapon,
// adjusted by its ap_cost perks matching the weapon's tags. The result is not
// floored.
func (r *Resolver) APCost(c character.Character) (int, error) {
	if err := checkPair(c, nil, false); err != nil {
		return 0, err
	}
	w, err := equippedWeapon(c)
	if err != nil {
		return 0, err
	}
	return w.WeaponStats().APCost + perk.CombatBonus(c.Base().Perks, perk.CategoryAPCost, w.Core().Tags), nil
}
