package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a formula of the form "[A + ]XdY".
// Supported forms: "d6", "4d6", "2 + 4d6", "-1 + 2d8".
//
// Precondition: none; any string may be passed.
// Postcondition: returns a Formula with Count >= 1 and Sides >= 1, or an
// error wrapping ErrFormula.
func Parse(s string) (Formula, error) {
	parts := strings.Split(s, "+")
	if len(parts) > 2 {
		return Formula{}, fmt.Errorf("%w: %q has more than one '+'", ErrFormula, s)
	}

	var f Formula
	roll := strings.TrimSpace(parts[len(parts)-1])
	if len(parts) == 2 {
		base, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return Formula{}, fmt.Errorf("%w: %q has a non-numeric base", ErrFormula, s)
		}
		f.Base = base
	}

	count, sides, ok := strings.Cut(roll, "d")
	if !ok {
		return Formula{}, fmt.Errorf("%w: %q is missing 'd'", ErrFormula, s)
	}

	f.Count = 1
	if count != "" {
		n, err := strconv.Atoi(count)
		if err != nil || n < 1 {
			return Formula{}, fmt.Errorf("%w: %q has an invalid roll count", ErrFormula, s)
		}
		f.Count = n
	}

	n, err := strconv.Atoi(sides)
	if err != nil || n < 1 {
		return Formula{}, fmt.Errorf("%w: %q has an invalid die size", ErrFormula, s)
	}
	f.Sides = n
	return f, nil
}

// MustParse parses s and panics on error. Useful for package-level constants.
//
// Precondition: s must be a valid formula.
func MustParse(s string) Formula {
	f, err := Parse(s)
	if err != nil {
		panic("dice: MustParse failed for formula " + s + ": " + err.Error())
	}
	return f
}
