package perk

import "errors"

// Perk error kinds. Every error returned by a List operation wraps exactly one
// of these; callers match with errors.Is.
var (
	ErrDuplicatePerk    = errors.New("perk: duplicate perk")
	ErrConflictingTrait = errors.New("perk: conflicting trait")
	ErrNotFound         = errors.New("perk: perk not found")
	ErrWrongType        = errors.New("perk: wrong perk type")
)

// ErrEffectFormat is returned (wrapped) for a malformed effect or requirement string.
var ErrEffectFormat = errors.New("perk: malformed effect")

// ErrBuild is returned (wrapped) by a PerkFactory that cannot produce the
// requested perk.
var ErrBuild = errors.New("perk: cannot build perk")
