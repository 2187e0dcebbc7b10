package inventory

import (
	"fmt"
	"slices"
)

// Reload fills weapon's clip from carried ammo whose id equals its AmmoType.
// Stacks are drawn newest first; exhausted stacks are removed from the
// carried list. Reloading stops as soon as the clip is full.
//
// Precondition: item is a *RangedWeapon that is carried or equipped.
// Postcondition: returns ErrAlreadyFull when the clip started full and
// ErrNoAmmoAvailable when no round was loaded.
func (inv *Inventory) Reload(item Item) error {
	w, err := inv.rangedWeapon(item)
	if err != nil {
		return err
	}
	if w.currentAmmo == w.ClipSize {
		return fmt.Errorf("%w: %q is fully loaded", ErrAlreadyFull, w.Name)
	}
	before := w.currentAmmo
	for i := len(inv.items) - 1; i >= 0 && w.currentAmmo < w.ClipSize; i-- {
		a, ok := inv.items[i].(*Ammo)
		if !ok || a.ID != w.AmmoType {
			continue
		}
		n := min(a.amount, w.ClipSize-w.currentAmmo)
		w.currentAmmo += n
		a.amount -= n
		if a.amount == 0 {
			inv.items = slices.Delete(inv.items, i, i+1)
		}
	}
	if w.currentAmmo == before {
		return fmt.Errorf("%w: no %s for %q", ErrNoAmmoAvailable, w.AmmoType, w.Name)
	}
	return nil
}

// Unload empties weapon's clip into the carried list as ammo built by
// factory. Rounds beyond one stack's MaxStack are split across several new
// stacks, each merged by the Add rule.
//
// Precondition: item is a *RangedWeapon that is carried or equipped.
// Postcondition: CurrentAmmo() == 0 on success and the carried amount of
// AmmoType grows by the unloaded count. On error the inventory is unchanged.
func (inv *Inventory) Unload(item Item, factory ItemFactory) error {
	w, err := inv.rangedWeapon(item)
	if err != nil {
		return err
	}
	if w.currentAmmo == 0 {
		return fmt.Errorf("%w: %q is not loaded", ErrAlreadyEmpty, w.Name)
	}
	stacks, err := createAmmo(factory, w.AmmoType, w.currentAmmo)
	if err != nil {
		return err
	}
	for _, a := range stacks {
		if inv.Contains(a) {
			return fmt.Errorf("%w: factory returned a held item", ErrAmmoCreationFailed)
		}
	}
	for _, a := range stacks {
		if err := inv.Add(a); err != nil {
			return fmt.Errorf("%w: %w", ErrAmmoCreationFailed, err)
		}
	}
	w.currentAmmo = 0
	return nil
}

// createAmmo builds enough stacks of id to hold rounds.
func createAmmo(factory ItemFactory, id string, rounds int) ([]*Ammo, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: no item factory", ErrAmmoCreationFailed)
	}
	var stacks []*Ammo
	for rounds > 0 {
		item, err := factory.Create(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAmmoCreationFailed, err)
		}
		a, ok := item.(*Ammo)
		if !ok || a == nil || a.MaxStack < 1 || slices.Contains(stacks, a) {
			return nil, fmt.Errorf("%w: %q is not a usable ammo template", ErrAmmoCreationFailed, id)
		}
		a.amount = min(rounds, a.MaxStack)
		rounds -= a.amount
		stacks = append(stacks, a)
	}
	return stacks, nil
}

func (inv *Inventory) rangedWeapon(item Item) (*RangedWeapon, error) {
	w, ok := item.(*RangedWeapon)
	if !ok || w == nil {
		return nil, fmt.Errorf("%w: only ranged weapons hold ammo", ErrWrongType)
	}
	if !inv.Contains(w) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, w.Name)
	}
	return w, nil
}
