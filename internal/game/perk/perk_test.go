package perk_test

import (
	"testing"

	"github.com/cory-johannsen/wasteland/internal/game/perk"
	"github.com/cory-johannsen/wasteland/internal/game/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mustEffects(s string) []perk.Effect {
	e, err := perk.ParseEffects(s)
	if err != nil {
		panic(err)
	}
	return e
}

func characterPerk(id, tags, effects string) *perk.CharacterPerk {
	return &perk.CharacterPerk{PerkCore: perk.PerkCore{ID: id, Name: id, Tags: tag.Parse(tags), Effects: mustEffects(effects)}}
}

func trait(id string, conflicts ...string) *perk.PlayerTrait {
	return &perk.PlayerTrait{PerkCore: perk.PerkCore{ID: id, Name: id, Tags: tag.Parse("trait")}, Conflicts: conflicts}
}

func status(id string, duration int) *perk.StatusEffect {
	return &perk.StatusEffect{PerkCore: perk.PerkCore{ID: id, Name: id, Tags: tag.Parse("status effect")}, Duration: duration}
}

func TestParseEffects(t *testing.T) {
	effects, err := perk.ParseEffects("weapon, gun, short, damage, 2; attribute, strength, -1;evasion,1")
	require.NoError(t, err)
	require.Len(t, effects, 3)

	assert.Equal(t, "damage", effects[0].Stat)
	assert.True(t, effects[0].Scope.Equal(tag.New("weapon", "gun", "short")))
	assert.Equal(t, 2, effects[0].Magnitude)

	assert.Equal(t, "strength", effects[1].Stat)
	assert.Equal(t, -1, effects[1].Magnitude)

	assert.Equal(t, "evasion", effects[2].Stat)
	assert.Empty(t, effects[2].Scope)
	assert.Equal(t, "evasion, 1", effects[2].String())
}

func TestParseEffects_Malformed(t *testing.T) {
	for _, s := range []string{"damage", "weapon, damage, lots", ", 2", "a, 1; ; b, 2"} {
		t.Run(s, func(t *testing.T) {
			_, err := perk.ParseEffects(s)
			require.ErrorIs(t, err, perk.ErrEffectFormat)
		})
	}
	effects, err := perk.ParseEffects("  ")
	require.NoError(t, err)
	assert.Empty(t, effects)
}

func TestParseRequirements(t *testing.T) {
	reqs, err := perk.ParseRequirements("agility, 5; guns, 3")
	require.NoError(t, err)
	assert.Equal(t, []perk.Requirement{{Stat: "agility", Min: 5}, {Stat: "guns", Min: 3}}, reqs)

	_, err = perk.ParseRequirements("agility")
	require.ErrorIs(t, err, perk.ErrEffectFormat)
	_, err = perk.ParseRequirements("agility, high")
	require.ErrorIs(t, err, perk.ErrEffectFormat)
}

func TestEffectString_RoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		scope := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 4).Draw(rt, "scope")
		e := perk.Effect{
			Stat:      rapid.StringMatching(`[a-z_]{1,8}`).Draw(rt, "stat"),
			Scope:     tag.New(scope...),
			Magnitude: rapid.IntRange(-20, 20).Draw(rt, "magnitude"),
		}
		parsed, err := perk.ParseEffects(e.String())
		require.NoError(rt, err)
		require.Len(rt, parsed, 1)
		assert.Equal(rt, e.Stat, parsed[0].Stat)
		assert.Equal(rt, e.Magnitude, parsed[0].Magnitude)
		assert.True(rt, e.Scope.Equal(parsed[0].Scope))
	})
}

func TestPlayerTrait_ConflictsWith(t *testing.T) {
	a, b, c := trait("a", "b"), trait("b"), trait("c")
	assert.True(t, a.ConflictsWith(b))
	assert.True(t, b.ConflictsWith(a))
	assert.False(t, a.ConflictsWith(c))
}

func TestDescribe(t *testing.T) {
	p := characterPerk("gunslinger", "perk, accuracy", "weapon, gun, short, accuracy, 1")
	assert.Equal(t, "gunslinger:  [gun, short, weapon, accuracy, 1]", perk.Describe(p))
	assert.Contains(t, perk.Describe(status("bleed", 3)), "(3 turns)")
	assert.Contains(t, perk.Describe(status("scar", -1)), "(permanent)")
}
