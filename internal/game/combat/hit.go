package combat

import (
	"fmt"

	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/inventory"
	"github.com/cory-johannsen/wasteland/internal/game/perk"
	"go.uber.org/zap"
)

// HitResult holds the outcome of one successful hit.
type HitResult struct {
	Attacker string
	Target   string
	// Formula is the damage formula after perk bonuses.
	Formula dice.Formula
	// Rolled is the raw total of Formula.
	Rolled int
	// Damage is the damage dealt after resistance and penetration.
	Damage int
	// APSpent is the action point cost paid by the attacker.
	APSpent int
	// Effect is the id of the status effect applied to the target, or empty.
	Effect string
	// TargetHealth is the target's health after the hit.
	TargetHealth int
}

// Killed reports whether the hit brought the target to zero health.
func (h HitResult) Killed() bool { return h.TargetHealth == 0 }

// ResolveHit applies one hit of c's equipped weapon to opp: it pays the AP
// cost, spends a round from a ranged weapon, rolls damage, reduces opp's
// health by the effective damage and, for a melee weapon with an effect,
// rolls 1..100 against the weapon's effect chance to apply the status effect
// created by perks. A status effect opp already carries is refreshed.
//
// Precondition: c and opp are distinct non-nil characters; roller and perks are non-nil.
// Postcondition: on error neither character is modified; opp.Health >= 0.
func (r *Resolver) ResolveHit(c, opp character.Character, roller dice.RandomRoll, perks perk.PerkFactory) (HitResult, error) {
	if err := checkPair(c, opp, true); err != nil {
		return HitResult{}, err
	}
	w, err := equippedWeapon(c)
	if err != nil {
		return HitResult{}, err
	}
	cost, err := r.APCost(c)
	if err != nil {
		return HitResult{}, err
	}
	attacker, target := c.Base(), opp.Base()
	if attacker.ActionPoints < cost {
		return HitResult{}, fmt.Errorf("%w: %q has %d, needs %d", ErrInsufficientAP, attacker.Name, attacker.ActionPoints, cost)
	}
	ranged, isRanged := w.(*inventory.RangedWeapon)
	if isRanged && ranged.CurrentAmmo() == 0 {
		return HitResult{}, fmt.Errorf("%w: %q", ErrOutOfAmmo, w.Core().Name)
	}

	formula, err := r.Damage(c, opp)
	if err != nil {
		return HitResult{}, err
	}
	rolled, err := dice.RollFormula(roller, formula)
	if err != nil {
		return HitResult{}, err
	}
	dmg, err := r.EffectiveDamage(c, opp, rolled)
	if err != nil {
		return HitResult{}, err
	}
	var status perk.Perk
	if melee, ok := w.(*inventory.MeleeWeapon); ok {
		if status, err = r.rollEffect(melee, roller, perks); err != nil {
			return HitResult{}, err
		}
	}

	if status != nil {
		if err := applyStatus(target, status); err != nil {
			return HitResult{}, err
		}
	}
	if isRanged {
		if err := ranged.SetCurrentAmmo(ranged.CurrentAmmo() - 1); err != nil {
			return HitResult{}, err
		}
	}
	attacker.ActionPoints -= cost
	target.Health = max(0, target.Health-dmg)
	res := HitResult{
		Attacker:     attacker.Name,
		Target:       target.Name,
		Formula:      formula,
		Rolled:       rolled,
		Damage:       dmg,
		APSpent:      cost,
		TargetHealth: target.Health,
	}
	if status != nil {
		res.Effect = status.Core().ID
	}

	r.logger.Info("hit resolved",
		zap.String("attacker", res.Attacker),
		zap.String("target", res.Target),
		zap.String("formula", res.Formula.Canonical()),
		zap.Int("rolled", res.Rolled),
		zap.Int("damage", res.Damage),
		zap.Int("ap_spent", res.APSpent),
		zap.String("effect", res.Effect),
		zap.Int("target_health", res.TargetHealth),
	)
	return res, nil
}

// rollEffect returns the status effect m applies on this hit, or nil.
func (r *Resolver) rollEffect(m *inventory.MeleeWeapon, roller dice.RandomRoll, perks perk.PerkFactory) (perk.Perk, error) {
	chance := m.EffectChancePercent()
	if chance == 0 {
		return nil, nil
	}
	roll, err := roller.Roll(1, 100, 1)
	if err != nil {
		return nil, fmt.Errorf("combat: effect chance: %w", err)
	}
	if roll > chance {
		return nil, nil
	}
	p, err := perks.Create(m.Effect)
	if err != nil {
		return nil, fmt.Errorf("combat: effect %q: %w", m.Effect, err)
	}
	if se, ok := p.(*perk.StatusEffect); !ok || se == nil {
		return nil, fmt.Errorf("%w: effect %q is not a status effect", perk.ErrWrongType, m.Effect)
	}
	return p, nil
}

// applyStatus adds the status effect p to target, replacing an active copy.
func applyStatus(target *character.Sheet, p perk.Perk) error {
	if target.Perks == nil {
		target.Perks = perk.NewList()
	}
	id := p.Core().ID
	if target.Perks.Has(id) {
		if err := target.Perks.RemoveID(id); err != nil {
			return fmt.Errorf("combat: refresh %q: %w", id, err)
		}
	}
	if err := target.Perks.Add(p); err != nil {
		return fmt.Errorf("combat: apply %q: %w", id, err)
	}
	return nil
}
