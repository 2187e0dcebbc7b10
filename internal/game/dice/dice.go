// Package dice provides damage formulas in "[A + ]XdY" notation and the
// injectable randomness used to roll them.
package dice

//go:generate mockgen -destination=mock/mock_dice.go -package=mockdice -source=dice.go

import (
	"errors"
	"fmt"
)

// ErrFormula is returned (wrapped) for any malformed damage formula string.
var ErrFormula = errors.New("dice: malformed formula")

// ErrRoll is returned (wrapped) when a roll is requested with an invalid range or count.
var ErrRoll = errors.New("dice: invalid roll")

// Formula is a parsed damage formula: Base + Count dice of Sides faces.
//
// Invariant: Count >= 1 and Sides >= 1 for any Formula produced by Parse.
type Formula struct {
	Base  int
	Count int
	Sides int
}

// Range returns the smallest and largest totals the formula can produce.
//
// Postcondition: min == Base+Count; max == Base+Count*Sides.
func (f Formula) Range() (int, int) {
	return f.Base + f.Count, f.Base + f.Count*f.Sides
}

// WithBase returns a copy of f with its flat base replaced by base.
func (f Formula) WithBase(base int) Formula {
	f.Base = base
	return f
}

// String formats f as "[A + ]XdY", omitting A when zero and X when one.
func (f Formula) String() string {
	roll := fmt.Sprintf("d%d", f.Sides)
	if f.Count != 1 {
		roll = fmt.Sprintf("%d%s", f.Count, roll)
	}
	if f.Base == 0 {
		return roll
	}
	return fmt.Sprintf("%d + %s", f.Base, roll)
}

// Canonical formats f as "A + XdY" with both parts always present.
func (f Formula) Canonical() string {
	return fmt.Sprintf("%d + %dd%d", f.Base, f.Count, f.Sides)
}

// MarshalText implements encoding.TextMarshaler.
func (f Formula) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so formulas can be read
// straight out of YAML content files.
func (f *Formula) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// RandomRoll is the randomness service consumed by combat resolution.
type RandomRoll interface {
	// Roll returns the sum of count independent uniform draws in [min, max].
	//
	// Precondition: count >= 1 and max >= min; otherwise ErrRoll is returned.
	Roll(min, max, count int) (int, error)
}

// RollFormula rolls f with r and returns Base plus the dice total.
//
// Precondition: r is non-nil.
func RollFormula(r RandomRoll, f Formula) (int, error) {
	total, err := r.Roll(1, f.Sides, f.Count)
	if err != nil {
		return 0, fmt.Errorf("dice: rolling %s: %w", f, err)
	}
	return f.Base + total, nil
}
