package inventory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Slot identifies one of the two equipment slots.
type Slot int

// Equipment slots.
const (
	SlotArmor Slot = iota
	SlotWeapon
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotArmor:
		return "armor"
	case SlotWeapon:
		return "weapon"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Defaults names the fallback items a character starts with. An item whose id
// matches the default for its slot cannot be unequipped or moved out of the
// slot. An empty id disables that protection.
type Defaults struct {
	ArmorID  string
	WeaponID string
}

// Inventory holds one armor slot, one weapon slot and an ordered list of
// carried items. Items are tracked by reference.
//
// Inventory is not safe for concurrent use; it is owned by a single character
// and mutated by one game loop at a time.
type Inventory struct {
	armor    *Armor
	weapon   Weapon
	items    []Item
	defaults Defaults
}

// New creates an Inventory with the given items equipped. Either may be nil
// to start with an empty slot.
//
// Postcondition: the carried list is empty.
func New(armor *Armor, weapon Weapon, defaults Defaults) *Inventory {
	inv := &Inventory{defaults: defaults}
	if armor != nil {
		inv.armor = armor
		assignInstanceID(armor)
	}
	if !isNil(weapon) {
		inv.weapon = weapon
		assignInstanceID(weapon)
	}
	return inv
}

// Armor returns the equipped armor, or nil when the slot is empty.
func (inv *Inventory) Armor() *Armor { return inv.armor }

// Weapon returns the equipped weapon, or nil when the slot is empty.
func (inv *Inventory) Weapon() Weapon { return inv.weapon }

// Equipped returns the occupant of slot, or nil when it is empty.
func (inv *Inventory) Equipped(slot Slot) Item {
	switch {
	case slot == SlotArmor && inv.armor != nil:
		return inv.armor
	case slot == SlotWeapon && inv.weapon != nil:
		return inv.weapon
	}
	return nil
}

// Items returns a copy of the carried list in order.
func (inv *Inventory) Items() []Item {
	return slices.Clone(inv.items)
}

// Len returns the number of carried items.
func (inv *Inventory) Len() int { return len(inv.items) }

// IndexOf returns the position of item in the carried list, or -1.
func (inv *Inventory) IndexOf(item Item) int {
	if isNil(item) {
		return -1
	}
	return slices.Index(inv.items, item)
}

// Contains reports whether item is carried or equipped.
func (inv *Inventory) Contains(item Item) bool {
	_, equipped := inv.slotOf(item)
	return equipped || inv.IndexOf(item) >= 0
}

// Find returns the carried or equipped item with the given instance id.
func (inv *Inventory) Find(instanceID string) (Item, bool) {
	for _, item := range inv.all() {
		if item.Core().InstanceID == instanceID {
			return item, true
		}
	}
	return nil, false
}

// IsDefault reports whether item is the configured default for its slot.
func (inv *Inventory) IsDefault(item Item) bool {
	switch item.(type) {
	case *Armor:
		return inv.defaults.ArmorID != "" && item.Core().ID == inv.defaults.ArmorID
	case *MeleeWeapon, *RangedWeapon:
		return inv.defaults.WeaponID != "" && item.Core().ID == inv.defaults.WeaponID
	}
	return false
}

// Add places item in the carried list. Stackables first top up existing
// stacks with the same id, oldest first; only the leftover, if any, is
// appended as a new stack. The added stackable's amount is reduced by
// whatever was merged.
//
// Precondition: item is not already carried or equipped.
// Postcondition: no stack exceeds its MaxStack; the total amount of the id is
// preserved.
func (inv *Inventory) Add(item Item) error {
	if isNil(item) {
		return fmt.Errorf("%w: cannot add nil item", ErrWrongType)
	}
	if inv.Contains(item) {
		return fmt.Errorf("%w: %q", ErrAlreadyHeld, item.Core().Name)
	}
	assignInstanceID(item)
	if s, ok := item.(Stackable); ok {
		inv.addStackable(s)
		return nil
	}
	inv.items = append(inv.items, item)
	return nil
}

func (inv *Inventory) addStackable(s Stackable) {
	incoming := s.Stack()
	id := s.Core().ID
	for _, carried := range inv.items {
		if incoming.amount == 0 {
			break
		}
		existing, ok := carried.(Stackable)
		if !ok || carried.Core().ID != id {
			continue
		}
		moved := min(incoming.amount, existing.Stack().Room())
		existing.Stack().amount += moved
		incoming.amount -= moved
	}
	if incoming.amount > 0 {
		inv.items = append(inv.items, s)
	}
}

// Equip swaps item with the occupant of its slot. The previous occupant takes
// item's position in the carried list; if the slot was empty item simply
// leaves the list.
//
// Precondition: item is *Armor, *MeleeWeapon or *RangedWeapon and is carried.
func (inv *Inventory) Equip(item Item) error {
	switch it := item.(type) {
	case *Armor:
		if it == nil {
			break
		}
		idx, err := inv.carriedIndex(it)
		if err != nil {
			return err
		}
		prev := inv.armor
		inv.armor = it
		inv.replaceAt(idx, prev)
		return nil
	case Weapon:
		if isNil(it) {
			break
		}
		idx, err := inv.carriedIndex(it)
		if err != nil {
			return err
		}
		prev := inv.weapon
		inv.weapon = it
		inv.replaceAt(idx, prev)
		return nil
	}
	return fmt.Errorf("%w: only armor and weapons can be equipped", ErrWrongType)
}

// replaceAt puts prev at idx, or deletes idx when prev is nil.
func (inv *Inventory) replaceAt(idx int, prev Item) {
	if isNil(prev) {
		inv.items = slices.Delete(inv.items, idx, idx+1)
		return
	}
	inv.items[idx] = prev
}

// Unequip moves the occupant of slot to the end of the carried list.
//
// Postcondition: slot is empty on success. Returns ErrAlreadyEmpty if the
// slot is empty or holds its default item.
func (inv *Inventory) Unequip(slot Slot) error {
	occupant := inv.Equipped(slot)
	if occupant == nil {
		return fmt.Errorf("%w: %s slot", ErrAlreadyEmpty, slot)
	}
	if inv.IsDefault(occupant) {
		return fmt.Errorf("%w: %s slot holds the default %q", ErrAlreadyEmpty, slot, occupant.Core().ID)
	}
	inv.clear(slot)
	inv.items = append(inv.items, occupant)
	return nil
}

func (inv *Inventory) clear(slot Slot) {
	switch slot {
	case SlotArmor:
		inv.armor = nil
	case SlotWeapon:
		inv.weapon = nil
	}
}

// Remove deletes item from the carried list.
//
// Postcondition: returns ErrCannotRemoveEquipped for an equipped item and
// ErrNotFound for an item that is not carried.
func (inv *Inventory) Remove(item Item) error {
	if _, equipped := inv.slotOf(item); equipped {
		return fmt.Errorf("%w: %q", ErrCannotRemoveEquipped, item.Core().Name)
	}
	idx, err := inv.carriedIndex(item)
	if err != nil {
		return err
	}
	inv.items = slices.Delete(inv.items, idx, idx+1)
	return nil
}

// RemoveAt deletes and returns the carried item at index.
func (inv *Inventory) RemoveAt(index int) (Item, error) {
	if index < 0 || index >= len(inv.items) {
		return nil, fmt.Errorf("%w: index %d out of range [0, %d)", ErrNotFound, index, len(inv.items))
	}
	item := inv.items[index]
	inv.items = slices.Delete(inv.items, index, index+1)
	return item, nil
}

// Move transfers item from one inventory to another. A carried item is
// relocated by reference and merged if stackable; an equipped item is
// unequipped from from and added to to.
//
// Postcondition: returns ErrSameInventory when from and to are the same,
// ErrCannotMoveDefault for an equipped default item and ErrNotFound when from
// does not hold item.
func Move(from, to *Inventory, item Item) error {
	if from == nil || to == nil {
		return fmt.Errorf("%w: nil inventory", ErrWrongType)
	}
	if from == to {
		return ErrSameInventory
	}
	if isNil(item) {
		return fmt.Errorf("%w: cannot move nil item", ErrWrongType)
	}
	if to.Contains(item) {
		return fmt.Errorf("%w: %q", ErrAlreadyHeld, item.Core().Name)
	}
	if idx := from.IndexOf(item); idx >= 0 {
		from.items = slices.Delete(from.items, idx, idx+1)
		return to.Add(item)
	}
	slot, equipped := from.slotOf(item)
	if !equipped {
		return fmt.Errorf("%w: %q", ErrNotFound, item.Core().Name)
	}
	if from.IsDefault(item) {
		return fmt.Errorf("%w: %q", ErrCannotMoveDefault, item.Core().ID)
	}
	from.clear(slot)
	return to.Add(item)
}

// TotalWeight returns the combined weight of equipped and carried items.
func (inv *Inventory) TotalWeight() float64 {
	var total float64
	for _, item := range inv.all() {
		total += TotalWeight(item)
	}
	return total
}

// String renders the slots and the numbered carried list.
func (inv *Inventory) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Armor: %s\nWeapon: %s\nItems:", nameOf(inv.Equipped(SlotArmor)), nameOf(inv.Equipped(SlotWeapon)))
	if len(inv.items) == 0 {
		b.WriteString("\nNone")
	}
	for i, item := range inv.items {
		fmt.Fprintf(&b, "\n%d: %s", i+1, Describe(item))
	}
	return b.String()
}

func nameOf(item Item) string {
	if item == nil {
		return "None"
	}
	return item.Core().Name
}

func (inv *Inventory) all() []Item {
	out := make([]Item, 0, len(inv.items)+2)
	if inv.armor != nil {
		out = append(out, inv.armor)
	}
	if inv.weapon != nil {
		out = append(out, inv.weapon)
	}
	return append(out, inv.items...)
}

func (inv *Inventory) slotOf(item Item) (Slot, bool) {
	if isNil(item) {
		return 0, false
	}
	if inv.armor != nil && item == Item(inv.armor) {
		return SlotArmor, true
	}
	if inv.weapon != nil && item == Item(inv.weapon) {
		return SlotWeapon, true
	}
	return 0, false
}

func (inv *Inventory) carriedIndex(item Item) (int, error) {
	idx := inv.IndexOf(item)
	if idx < 0 {
		name := "<nil>"
		if !isNil(item) {
			name = item.Core().Name
		}
		return -1, fmt.Errorf("%w: %q is not carried", ErrNotFound, name)
	}
	return idx, nil
}

func assignInstanceID(item Item) {
	if c := item.Core(); c.InstanceID == "" {
		c.InstanceID = uuid.NewString()
	}
}

// isNil reports whether item is nil or a typed nil pointer.
func isNil(item Item) bool {
	switch it := item.(type) {
	case nil:
		return true
	case *Armor:
		return it == nil
	case *MeleeWeapon:
		return it == nil
	case *RangedWeapon:
		return it == nil
	case *Ammo:
		return it == nil
	case *Consumable:
		return it == nil
	}
	return false
}
