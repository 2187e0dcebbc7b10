package inventory_test

import (
	"testing"

	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/inventory"
	"github.com/cory-johannsen/wasteland/internal/game/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var defaults = inventory.Defaults{ArmorID: "clothes", WeaponID: "unarmed"}

func newArmor(id string, dmgRes int) *inventory.Armor {
	return &inventory.Armor{
		ItemCore:  inventory.ItemCore{ID: id, Name: id, Tags: tag.Parse("armor"), Weight: 2},
		DamageRes: dmgRes,
	}
}

func newMelee(id string) *inventory.MeleeWeapon {
	return &inventory.MeleeWeapon{
		ItemCore:   inventory.ItemCore{ID: id, Name: id, Tags: tag.Parse("weapon, melee")},
		WeaponCore: inventory.WeaponCore{Damage: dice.MustParse("d4"), APCost: 3},
	}
}

func newPistol(clip, loaded int) *inventory.RangedWeapon {
	w := &inventory.RangedWeapon{
		ItemCore:   inventory.ItemCore{ID: "pistol", Name: "Pistol", Tags: tag.Parse("weapon, gun, short"), Weight: 3},
		WeaponCore: inventory.WeaponCore{Damage: dice.MustParse("2 + 4d6"), APCost: 5},
		AmmoType:   "ammo_10mm",
		ClipSize:   clip,
	}
	if err := w.SetCurrentAmmo(loaded); err != nil {
		panic(err)
	}
	return w
}

func newAmmo(id string, maxStack, amount int) *inventory.Ammo {
	a := &inventory.Ammo{
		ItemCore:      inventory.ItemCore{ID: id, Name: id, Tags: tag.Parse("ammo"), Weight: 0.5},
		StackableCore: inventory.StackableCore{MaxStack: maxStack},
	}
	if err := a.SetAmount(amount); err != nil {
		panic(err)
	}
	return a
}

func amounts(inv *inventory.Inventory) []int {
	var out []int
	for _, it := range inv.Items() {
		if s, ok := it.(inventory.Stackable); ok {
			out = append(out, s.Stack().Amount())
		}
	}
	return out
}

func newInventory() *inventory.Inventory {
	return inventory.New(newArmor("clothes", 0), newMelee("unarmed"), defaults)
}

func TestAdd_NonStackableAppendsAndAssignsInstanceID(t *testing.T) {
	inv := newInventory()
	a, b := newArmor("jacket", 3), newMelee("knife")
	require.NoError(t, inv.Add(a))
	require.NoError(t, inv.Add(b))
	assert.Equal(t, []inventory.Item{a, b}, inv.Items())
	assert.NotEmpty(t, a.InstanceID)
	assert.NotEqual(t, a.InstanceID, b.InstanceID)

	found, ok := inv.Find(a.InstanceID)
	require.True(t, ok)
	assert.Same(t, a, found)
	assert.NotEmpty(t, inv.Armor().InstanceID, "equipped items get instance ids too")
}

func TestAdd_RejectsNilAndDuplicates(t *testing.T) {
	inv := newInventory()
	require.ErrorIs(t, inv.Add(nil), inventory.ErrWrongType)
	var nilArmor *inventory.Armor
	require.ErrorIs(t, inv.Add(nilArmor), inventory.ErrWrongType)

	k := newMelee("knife")
	require.NoError(t, inv.Add(k))
	require.ErrorIs(t, inv.Add(k), inventory.ErrAlreadyHeld)
	require.ErrorIs(t, inv.Add(inv.Armor()), inventory.ErrAlreadyHeld)
}

func TestAdd_StackableMergesIntoExisting(t *testing.T) {
	inv := newInventory()
	require.NoError(t, inv.Add(newAmmo("ammo_10mm", 5, 2)))
	require.NoError(t, inv.Add(newAmmo("ammo_10mm", 5, 1)))
	assert.Equal(t, []int{3}, amounts(inv))
}

func TestAdd_StackableOverflowSplits(t *testing.T) {
	inv := newInventory()
	require.NoError(t, inv.Add(newAmmo("ammo_10mm", 5, 3)))
	incoming := newAmmo("ammo_10mm", 5, 4)
	require.NoError(t, inv.Add(incoming))
	assert.Equal(t, []int{5, 2}, amounts(inv))
	assert.Same(t, incoming, inv.Items()[1], "leftover is appended as the incoming stack")
}

func TestAdd_StackableFillsSeveralPartialStacks(t *testing.T) {
	inv := newInventory()
	first, second := newAmmo("ammo_10mm", 5, 5), newAmmo("ammo_10mm", 5, 5)
	require.NoError(t, inv.Add(first))
	require.NoError(t, inv.Add(newMelee("knife")))
	require.NoError(t, inv.Add(second))
	require.NoError(t, first.SetAmount(3))
	require.NoError(t, second.SetAmount(4))

	require.NoError(t, inv.Add(newAmmo("ammo_10mm", 5, 4)))
	assert.Equal(t, []int{5, 5, 1}, amounts(inv))
}

func TestAdd_StackableDoesNotMergeOtherIDs(t *testing.T) {
	inv := newInventory()
	require.NoError(t, inv.Add(newAmmo("ammo_10mm", 50, 5)))
	require.NoError(t, inv.Add(newAmmo("ammo_308", 50, 5)))
	assert.Equal(t, []int{5, 5}, amounts(inv))
}

func TestAdd_StackInvariant_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxStack := rapid.IntRange(1, 20).Draw(rt, "max")
		adds := rapid.SliceOfN(rapid.IntRange(1, maxStack), 1, 15).Draw(rt, "adds")
		inv := newInventory()
		total := 0
		for _, n := range adds {
			require.NoError(rt, inv.Add(newAmmo("ammo_10mm", maxStack, n)))
			total += n
		}
		sum, partial := 0, 0
		for _, a := range amounts(inv) {
			assert.LessOrEqual(rt, a, maxStack)
			assert.Positive(rt, a)
			if a < maxStack {
				partial++
			}
			sum += a
		}
		assert.Equal(rt, total, sum, "total amount must be preserved")
		assert.LessOrEqual(rt, partial, 1, "at most one partial stack remains")
	})
}

func TestEquip_SwapsAtSameIndex(t *testing.T) {
	inv := newInventory()
	clothes := inv.Armor()
	first, jacket, last := newMelee("a"), newArmor("jacket", 3), newMelee("b")
	for _, it := range []inventory.Item{first, jacket, last} {
		require.NoError(t, inv.Add(it))
	}
	require.NoError(t, inv.Equip(jacket))
	assert.Same(t, jacket, inv.Armor())
	assert.Equal(t, []inventory.Item{first, clothes, last}, inv.Items())
}

func TestEquip_Errors(t *testing.T) {
	inv := newInventory()
	require.ErrorIs(t, inv.Equip(newArmor("jacket", 1)), inventory.ErrNotFound)
	a := newAmmo("ammo_10mm", 50, 1)
	require.NoError(t, inv.Add(a))
	require.ErrorIs(t, inv.Equip(a), inventory.ErrWrongType)
	require.ErrorIs(t, inv.Equip(nil), inventory.ErrWrongType)
}

func TestEquip_IntoEmptySlotRemovesFromList(t *testing.T) {
	inv := inventory.New(nil, nil, inventory.Defaults{})
	p := newPistol(10, 0)
	require.NoError(t, inv.Add(p))
	require.NoError(t, inv.Equip(p))
	assert.Same(t, p, inv.Weapon())
	assert.Zero(t, inv.Len())
}

func TestEquip_Involution_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		inv := newInventory()
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		var carried []inventory.Item
		for i := range n {
			var it inventory.Item
			if rapid.Bool().Draw(rt, "armor") {
				it = newArmor("armor", i)
			} else {
				it = newMelee("weapon")
			}
			require.NoError(rt, inv.Add(it))
			carried = append(carried, it)
		}
		target := carried[rapid.IntRange(0, n-1).Draw(rt, "target")]
		slot := inventory.SlotWeapon
		if _, ok := target.(*inventory.Armor); ok {
			slot = inventory.SlotArmor
		}
		before := inv.Items()
		prev := inv.Equipped(slot)

		require.NoError(rt, inv.Equip(target))
		require.NoError(rt, inv.Equip(prev))

		assert.Equal(rt, before, inv.Items())
		assert.Equal(rt, prev, inv.Equipped(slot))
	})
}

func TestUnequip(t *testing.T) {
	inv := newInventory()
	jacket := newArmor("jacket", 3)
	require.NoError(t, inv.Add(jacket))
	require.NoError(t, inv.Add(newMelee("knife")))
	require.NoError(t, inv.Equip(jacket))

	require.NoError(t, inv.Unequip(inventory.SlotArmor))
	assert.Nil(t, inv.Armor())
	items := inv.Items()
	assert.Same(t, jacket, items[len(items)-1], "unequipped item goes to the end")
	require.ErrorIs(t, inv.Unequip(inventory.SlotArmor), inventory.ErrAlreadyEmpty)
}

func TestUnequip_DefaultProtection(t *testing.T) {
	inv := newInventory()
	require.ErrorIs(t, inv.Unequip(inventory.SlotArmor), inventory.ErrAlreadyEmpty)
	require.ErrorIs(t, inv.Unequip(inventory.SlotWeapon), inventory.ErrAlreadyEmpty)

	unprotected := inventory.New(newArmor("clothes", 0), newMelee("unarmed"), inventory.Defaults{})
	require.NoError(t, unprotected.Unequip(inventory.SlotWeapon))
	assert.Nil(t, unprotected.Weapon())
	assert.Equal(t, 1, unprotected.Len())
}

func TestRemove(t *testing.T) {
	inv := newInventory()
	k := newMelee("knife")
	require.NoError(t, inv.Add(k))
	require.ErrorIs(t, inv.Remove(inv.Weapon()), inventory.ErrCannotRemoveEquipped)
	require.ErrorIs(t, inv.Remove(newMelee("other")), inventory.ErrNotFound)
	require.NoError(t, inv.Remove(k))
	assert.Zero(t, inv.Len())

	require.NoError(t, inv.Add(k))
	got, err := inv.RemoveAt(0)
	require.NoError(t, err)
	assert.Same(t, k, got)
	_, err = inv.RemoveAt(0)
	require.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestReload_ConsumesWholeStack(t *testing.T) {
	inv := newInventory()
	p := newPistol(10, 0)
	require.NoError(t, inv.Add(p))
	require.NoError(t, inv.Add(newAmmo("ammo_10mm", 50, 5)))

	require.NoError(t, inv.Reload(p))
	assert.Equal(t, 5, p.CurrentAmmo())
	assert.Equal(t, []inventory.Item{p}, inv.Items(), "exhausted stack is removed")
}

func TestReload_NewestStackFirst(t *testing.T) {
	p := newPistol(8, 0)
	inv := inventory.New(nil, p, defaults)
	older, newer := newAmmo("ammo_10mm", 10, 10), newAmmo("ammo_10mm", 10, 3)
	require.NoError(t, inv.Add(older))
	require.NoError(t, inv.Add(newer))
	require.Equal(t, []int{10, 3}, amounts(inv))

	require.NoError(t, inv.Reload(p))
	assert.Equal(t, 8, p.CurrentAmmo())
	assert.Equal(t, []int{5}, amounts(inv))
	assert.Same(t, older, inv.Items()[0])
}

func TestReload_Errors(t *testing.T) {
	inv := newInventory()
	full := newPistol(5, 5)
	empty := newPistol(5, 0)
	require.NoError(t, inv.Add(full))
	require.NoError(t, inv.Add(empty))
	require.NoError(t, inv.Add(newAmmo("ammo_308", 20, 20)))

	require.ErrorIs(t, inv.Reload(full), inventory.ErrAlreadyFull)
	require.ErrorIs(t, inv.Reload(empty), inventory.ErrNoAmmoAvailable)
	require.ErrorIs(t, inv.Reload(newPistol(5, 0)), inventory.ErrNotFound)
	require.ErrorIs(t, inv.Reload(inv.Weapon()), inventory.ErrWrongType)
}

func TestReload_EquippedWeapon(t *testing.T) {
	p := newPistol(12, 2)
	inv := inventory.New(nil, p, defaults)
	require.NoError(t, inv.Add(newAmmo("ammo_10mm", 50, 50)))
	require.NoError(t, inv.Reload(p))
	assert.Equal(t, 12, p.CurrentAmmo())
	assert.Equal(t, []int{40}, amounts(inv))
}

func TestMove_CarriedItem(t *testing.T) {
	from, to := newInventory(), newInventory()
	k := newMelee("knife")
	require.NoError(t, from.Add(k))
	require.NoError(t, inventory.Move(from, to, k))
	assert.Zero(t, from.Len())
	assert.Equal(t, []inventory.Item{k}, to.Items())
}

func TestMove_MergesStackables(t *testing.T) {
	from, to := newInventory(), newInventory()
	a := newAmmo("ammo_10mm", 50, 10)
	require.NoError(t, from.Add(a))
	require.NoError(t, to.Add(newAmmo("ammo_10mm", 50, 45)))
	require.NoError(t, inventory.Move(from, to, a))
	assert.Equal(t, []int{50, 5}, amounts(to))
}

func TestMove_EquippedItem(t *testing.T) {
	p := newPistol(12, 0)
	from := inventory.New(newArmor("clothes", 0), p, defaults)
	to := newInventory()
	require.NoError(t, inventory.Move(from, to, p))
	assert.Nil(t, from.Weapon())
	assert.Zero(t, from.Len())
	assert.Equal(t, []inventory.Item{p}, to.Items())
}

func TestMove_Errors(t *testing.T) {
	from, to := newInventory(), newInventory()
	require.ErrorIs(t, inventory.Move(from, from, from.Armor()), inventory.ErrSameInventory)
	require.ErrorIs(t, inventory.Move(from, to, from.Armor()), inventory.ErrCannotMoveDefault)
	require.ErrorIs(t, inventory.Move(from, to, newMelee("ghost")), inventory.ErrNotFound)
	require.ErrorIs(t, inventory.Move(from, to, nil), inventory.ErrWrongType)
}

func TestTotalWeightAndString(t *testing.T) {
	inv := newInventory()
	assert.Contains(t, inv.String(), "Items:\nNone")
	require.NoError(t, inv.Add(newAmmo("ammo_10mm", 50, 10)))
	require.NoError(t, inv.Add(newPistol(12, 3)))
	assert.InDelta(t, 2+5+3, inv.TotalWeight(), 0.0001)
	assert.Equal(t,
		"Armor: clothes\nWeapon: unarmed\nItems:\n1: ammo_10mm (10/50)\n2: Pistol (2 + 4d6, 3/12 ammo_10mm)",
		inv.String())
}
