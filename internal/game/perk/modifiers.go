package perk

import "github.com/cory-johannsen/wasteland/internal/game/tag"

// Combat bonus categories. A perk contributes to a category only when its own
// tags include the category name, and only through effects whose stat key is
// the category.
const (
	CategoryDamage   = "damage"
	CategoryAccuracy = "accuracy"
	CategoryDmgRes   = "dmg_res"
	CategoryAPCost   = "ap_cost"
)

// Stat bonus categories for StatBonus.
const (
	CategoryAttribute = "attribute"
	CategorySkill     = "skill"
)

// CombatBonus sums the magnitudes of every effect, across the perks in l
// tagged with category, whose stat key is category and whose scope is a
// non-empty subset of query.
//
// Postcondition: returns 0 when nothing matches; never fails.
func CombatBonus(l *List, category string, query tag.Set) int {
	if l == nil {
		return 0
	}
	total := 0
	for _, p := range l.perks {
		c := p.Core()
		if !c.Tags.Has(category) {
			continue
		}
		for _, e := range c.Effects {
			if e.Stat == category && len(e.Scope) > 0 && e.Scope.SubsetOf(query) {
				total += e.Magnitude
			}
		}
	}
	return total
}

// StatBonus sums the magnitudes of every effect with stat key key whose scope
// is a subset of {category}, across the perks in l tagged with category. An
// empty category considers every perk and accepts only unscoped effects, which
// is how derived stats such as "evasion" or "carry_weight" are modified.
//
// Postcondition: returns 0 when nothing matches; never fails.
func StatBonus(l *List, category, key string) int {
	if l == nil {
		return 0
	}
	scope := tag.New(category)
	total := 0
	for _, p := range l.perks {
		c := p.Core()
		if category != "" && !c.Tags.Has(category) {
			continue
		}
		for _, e := range c.Effects {
			if e.Stat == key && e.Scope.SubsetOf(scope) {
				total += e.Magnitude
			}
		}
	}
	return total
}
