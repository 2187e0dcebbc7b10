package character

import (
	"fmt"

	"github.com/cory-johannsen/wasteland/internal/game/inventory"
	"github.com/cory-johannsen/wasteland/internal/game/perk"
)

// Derived stat keys. A perk effect with one of these stat keys and no scope
// modifies the stat, e.g. "evasion, 1".
const (
	StatCarryWeight = "carry_weight"
	StatMeleeBonus  = "melee_bonus"
	StatMaxHealth   = "max_health"
	StatRadRes      = "rad_res"
	StatEvasion     = "evasion"
	StatMaxAP       = "max_ap"
	StatExpMult     = "exp_mult"
)

// Formulas holds the constants of the derived-stat formulas.
type Formulas struct {
	CarryWeightBase          int
	CarryWeightStrengthMult  int
	HealthEnduranceMult      int
	HealthLevelMult          int
	RadResEnduranceMult      int
	ActionPointsBase         int
	ExpMultBase              int
	ExpMultIntelligenceBonus int
	// AttributeBaseline is the attribute value above which melee bonus,
	// radiation resistance and evasion start to grow.
	AttributeBaseline int
}

// DefaultFormulas returns the standard rules constants.
func DefaultFormulas() Formulas {
	return Formulas{
		CarryWeightBase:          10,
		CarryWeightStrengthMult:  3,
		HealthEnduranceMult:      4,
		HealthLevelMult:          2,
		RadResEnduranceMult:      5,
		ActionPointsBase:         10,
		ExpMultBase:              75,
		ExpMultIntelligenceBonus: 5,
		AttributeBaseline:        5,
	}
}

// StatResolver computes effective attributes, skills and derived stats by
// adding perk bonuses to base values. It only reads characters.
type StatResolver struct {
	f Formulas
}

// NewStatResolver returns a StatResolver using f.
func NewStatResolver(f Formulas) *StatResolver {
	return &StatResolver{f: f}
}

// Formulas returns the constants r was built with.
func (r *StatResolver) Formulas() Formulas { return r.f }

// EffectiveAttribute returns base attribute name plus the bonuses of perks
// tagged "attribute".
//
// Precondition: c is non-nil.
func (r *StatResolver) EffectiveAttribute(c Character, name string) (int, error) {
	b := c.Base()
	v, ok := b.Attributes.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: attribute %q", ErrUnknownStat, name)
	}
	return v + perk.StatBonus(b.Perks, perk.CategoryAttribute, name), nil
}

// EffectiveAttributes returns all five effective attributes.
func (r *StatResolver) EffectiveAttributes(c Character) Attributes {
	out := c.Base().Attributes
	for _, name := range AttributeNames {
		*out.field(name) += perk.StatBonus(c.Base().Perks, perk.CategoryAttribute, name)
	}
	return out
}

// EffectiveSkill returns base skill name plus the bonuses of perks tagged "skill".
//
// Postcondition: returns ErrNoSkills for a critter and ErrUnknownStat for an
// unknown skill name.
func (r *StatResolver) EffectiveSkill(c Character, name string) (int, error) {
	skills, ok := SkillsOf(c)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoSkills, c.Base().Name)
	}
	v, ok := skills.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: skill %q", ErrUnknownStat, name)
	}
	return v + perk.StatBonus(c.Base().Perks, perk.CategorySkill, name), nil
}

// CarryWeight returns base + mult*STR plus perk bonuses.
func (r *StatResolver) CarryWeight(c Character) int {
	a := r.EffectiveAttributes(c)
	return r.f.CarryWeightBase + r.f.CarryWeightStrengthMult*a.Strength + r.bonus(c, StatCarryWeight)
}

// MeleeBonus returns max(0, STR - baseline) plus perk bonuses.
func (r *StatResolver) MeleeBonus(c Character) int {
	a := r.EffectiveAttributes(c)
	return max(0, a.Strength-r.f.AttributeBaseline) + r.bonus(c, StatMeleeBonus)
}

// MaxHealth returns mult*END + levelMult*(level-1) + the character's health
// bonus, plus perk bonuses.
func (r *StatResolver) MaxHealth(c Character) int {
	b := c.Base()
	a := r.EffectiveAttributes(c)
	return r.f.HealthEnduranceMult*a.Endurance + r.f.HealthLevelMult*(b.Level-1) + b.HealthBonus + r.bonus(c, StatMaxHealth)
}

// RadRes returns max(0, mult*(END - baseline)) plus the equipped armor's
// radiation resistance and perk bonuses.
func (r *StatResolver) RadRes(c Character) int {
	a := r.EffectiveAttributes(c)
	v := max(0, r.f.RadResEnduranceMult*(a.Endurance-r.f.AttributeBaseline))
	if armor := equippedArmor(c); armor != nil {
		v += armor.RadRes
	}
	return v + r.bonus(c, StatRadRes)
}

// Evasion returns max(0, AGI - baseline) plus the equipped armor's evasion and
// perk bonuses.
func (r *StatResolver) Evasion(c Character) int {
	a := r.EffectiveAttributes(c)
	v := max(0, a.Agility-r.f.AttributeBaseline)
	if armor := equippedArmor(c); armor != nil {
		v += armor.Evasion
	}
	return v + r.bonus(c, StatEvasion)
}

// MaxAP returns base + AGI plus perk bonuses.
func (r *StatResolver) MaxAP(c Character) int {
	a := r.EffectiveAttributes(c)
	return r.f.ActionPointsBase + a.Agility + r.bonus(c, StatMaxAP)
}

// ExpMult returns the experience gain multiplier in percent: base + bonus*INT
// plus perk bonuses.
func (r *StatResolver) ExpMult(c Character) int {
	a := r.EffectiveAttributes(c)
	return r.f.ExpMultBase + r.f.ExpMultIntelligenceBonus*a.Intelligence + r.bonus(c, StatExpMult)
}

// Encumbered reports whether c carries more than its carry weight.
func (r *StatResolver) Encumbered(c Character) bool {
	inv := c.Base().Inventory
	if inv == nil {
		return false
	}
	return inv.TotalWeight() > float64(r.CarryWeight(c))
}

// MeetsRequirements reports whether c satisfies every requirement of p.
// Requirements name an attribute, a skill or "level" and are checked against
// effective values.
//
// Postcondition: returns ErrUnknownStat for a requirement the resolver cannot
// evaluate; a skill requirement on a critter is simply unmet.
func (r *StatResolver) MeetsRequirements(c Character, p *perk.CharacterPerk) (bool, error) {
	for _, req := range p.Requirements {
		v, err := r.requirementValue(c, req.Stat)
		if err != nil {
			return false, err
		}
		if v < req.Min {
			return false, nil
		}
	}
	return true, nil
}

func (r *StatResolver) requirementValue(c Character, stat string) (int, error) {
	if stat == "level" {
		return c.Base().Level, nil
	}
	if v, err := r.EffectiveAttribute(c, stat); err == nil {
		return v, nil
	}
	if _, isSkill := (&Skills{}).Get(stat); !isSkill {
		return 0, fmt.Errorf("%w: requirement %q", ErrUnknownStat, stat)
	}
	v, err := r.EffectiveSkill(c, stat)
	if err != nil {
		return 0, nil
	}
	return v, nil
}

func (r *StatResolver) bonus(c Character, key string) int {
	return perk.StatBonus(c.Base().Perks, "", key)
}

func equippedArmor(c Character) *inventory.Armor {
	if inv := c.Base().Inventory; inv != nil {
		return inv.Armor()
	}
	return nil
}
