package perk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/wasteland/internal/game/tag"
)

// Effect is one parsed token of a perk's effect string. The token
// "weapon, gun, short, damage, 2" parses to Scope {weapon, gun, short},
// Stat "damage" and Magnitude 2.
type Effect struct {
	Stat      string
	Scope     tag.Set
	Magnitude int
}

// String renders e in token form.
func (e Effect) String() string {
	parts := append(e.Scope.Slice(), e.Stat, strconv.Itoa(e.Magnitude))
	return strings.Join(parts, ", ")
}

// ParseEffects parses a semicolon-delimited list of effect tokens. Each token
// is comma-delimited; its last element is a signed integer magnitude, the one
// before it the stat key, and any remaining elements the scope.
//
// Postcondition: ParseEffects("") returns no effects and no error; any other
// malformed input returns an error wrapping ErrEffectFormat.
func ParseEffects(s string) ([]Effect, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var effects []Effect
	for _, token := range strings.Split(s, ";") {
		fields := splitTrimmed(token)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: token %q needs a stat and a magnitude", ErrEffectFormat, token)
		}
		n := len(fields)
		mag, err := strconv.Atoi(fields[n-1])
		if err != nil {
			return nil, fmt.Errorf("%w: token %q has non-numeric magnitude", ErrEffectFormat, token)
		}
		if fields[n-2] == "" {
			return nil, fmt.Errorf("%w: token %q has an empty stat", ErrEffectFormat, token)
		}
		effects = append(effects, Effect{
			Stat:      fields[n-2],
			Scope:     tag.New(fields[:n-2]...),
			Magnitude: mag,
		})
	}
	return effects, nil
}

// Requirement is a minimum value for an attribute, skill or level.
type Requirement struct {
	Stat string
	Min  int
}

// ParseRequirements parses "agility, 5; guns, 3".
func ParseRequirements(s string) ([]Requirement, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var reqs []Requirement
	for _, token := range strings.Split(s, ";") {
		fields := splitTrimmed(token)
		if len(fields) != 2 || fields[0] == "" {
			return nil, fmt.Errorf("%w: requirement %q must be \"stat, minimum\"", ErrEffectFormat, token)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: requirement %q has non-numeric minimum", ErrEffectFormat, token)
		}
		reqs = append(reqs, Requirement{Stat: fields[0], Min: n})
	}
	return reqs, nil
}

func splitTrimmed(s string) []string {
	fields := strings.Split(s, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
