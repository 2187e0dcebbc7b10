package inventory

import "errors"

// Inventory error kinds. Every error returned by an Inventory operation wraps
// exactly one of these; callers match with errors.Is.
var (
	ErrWrongType            = errors.New("inventory: wrong item type")
	ErrNotFound             = errors.New("inventory: item not found")
	ErrAlreadyEmpty         = errors.New("inventory: already empty")
	ErrAlreadyFull          = errors.New("inventory: already full")
	ErrNoAmmoAvailable      = errors.New("inventory: no ammo available")
	ErrCannotRemoveEquipped = errors.New("inventory: cannot remove an equipped item")
	ErrCannotMoveDefault    = errors.New("inventory: cannot move a default item")
	ErrSameInventory        = errors.New("inventory: source and destination are the same")
	ErrAmmoCreationFailed   = errors.New("inventory: ammo creation failed")
	ErrAlreadyHeld          = errors.New("inventory: item is already held")
)

// ErrBuild is returned (wrapped) by an ItemFactory that cannot produce the
// requested item: unknown id, malformed field or unrecognized type tag.
var ErrBuild = errors.New("inventory: cannot build item")
