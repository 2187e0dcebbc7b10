package perk

//go:generate mockgen -destination=mock/mock_registry.go -package=mockperk -source=registry.go

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cory-johannsen/wasteland/internal/game/tag"
	"gopkg.in/yaml.v3"
)

// PerkFactory produces fresh perk instances by definition id.
type PerkFactory interface {
	// Create returns a new, independent perk built from definition id.
	//
	// Postcondition: returns an error wrapping ErrBuild when id is unknown.
	Create(id string) (Perk, error)
}

// Type tags selecting the perk variant.
const (
	TagPerk         = "perk"
	TagTrait        = "trait"
	TagStatusEffect = "status effect"
)

// PerkDef is the static definition of a perk, loaded from YAML.
type PerkDef struct {
	ID           string  `yaml:"id"`
	Tags         tag.Set `yaml:"tags"`
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description"`
	Effects      string  `yaml:"effects"`
	Requirements string  `yaml:"requirements"`
	Conflicts    string  `yaml:"conflicts"`
	Duration     int     `yaml:"duration"` // status effects only; negative = permanent
}

// Validate checks that the PerkDef satisfies its invariants.
//
// Postcondition: returns nil iff the def builds without error.
func (d *PerkDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, err := ParseEffects(d.Effects); err != nil {
		errs = append(errs, err)
	}
	switch {
	case d.Tags.Has(TagPerk):
		if _, err := ParseRequirements(d.Requirements); err != nil {
			errs = append(errs, err)
		}
	case d.Tags.Has(TagTrait):
	case d.Tags.Has(TagStatusEffect):
		if d.Duration == 0 {
			errs = append(errs, errors.New("duration must be non-zero"))
		}
	default:
		errs = append(errs, fmt.Errorf("tags %q name no perk type", d.Tags))
	}
	if len(errs) > 0 {
		return fmt.Errorf("perk %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

type perkFile struct {
	Perks []*PerkDef `yaml:"perks"`
}

// LoadPerks reads every *.yaml and *.yml file in dir and returns the
// validated PerkDefs sorted by id.
//
// Precondition: dir must be a readable directory.
func LoadPerks(dir string) ([]*PerkDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading perk dir %q: %w", dir, err)
	}
	var defs []*PerkDef
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var f perkFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		for _, d := range f.Perks {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("%q: %w", path, err)
			}
		}
		defs = append(defs, f.Perks...)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}

// Registry holds all known PerkDefs keyed by id and implements PerkFactory.
type Registry struct {
	defs map[string]*PerkDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*PerkDef)}
}

// LoadDirectory reads every perk file in dir and returns a populated Registry.
//
// Postcondition: Returns a non-nil Registry, or an error if any file fails to
// parse or validate, or two files define the same id.
func LoadDirectory(dir string) (*Registry, error) {
	defs, err := LoadPerks(dir)
	if err != nil {
		return nil, err
	}
	reg := NewRegistry()
	for _, d := range defs {
		if err := reg.Register(d); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register adds def to the registry.
//
// Precondition: def must not be nil.
// Postcondition: Get(def.ID) returns def; returns an error if def.ID is already registered.
func (r *Registry) Register(def *PerkDef) error {
	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("perk: Registry.Register: perk ID %q already registered", def.ID)
	}
	r.defs[def.ID] = def
	return nil
}

// Get returns the PerkDef for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*PerkDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot of all registered PerkDefs in unspecified order.
func (r *Registry) All() []*PerkDef {
	out := make([]*PerkDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

// Create builds a fresh perk from definition id.
func (r *Registry) Create(id string) (Perk, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown perk %q", ErrBuild, id)
	}
	p, err := build(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBuild, id, err)
	}
	return p, nil
}

func build(d *PerkDef) (Perk, error) {
	effects, err := ParseEffects(d.Effects)
	if err != nil {
		return nil, err
	}
	core := PerkCore{
		ID:          d.ID,
		Tags:        d.Tags.Union(),
		Name:        d.Name,
		Description: d.Description,
		Effects:     effects,
	}
	switch {
	case d.Tags.Has(TagPerk):
		reqs, err := ParseRequirements(d.Requirements)
		if err != nil {
			return nil, err
		}
		return &CharacterPerk{PerkCore: core, Requirements: reqs}, nil
	case d.Tags.Has(TagTrait):
		var conflicts []string
		for _, c := range strings.Split(d.Conflicts, ",") {
			if c = strings.TrimSpace(c); c != "" {
				conflicts = append(conflicts, c)
			}
		}
		return &PlayerTrait{PerkCore: core, Conflicts: conflicts}, nil
	case d.Tags.Has(TagStatusEffect):
		return &StatusEffect{PerkCore: core, Duration: d.Duration}, nil
	}
	return nil, fmt.Errorf("incorrect perk type tags %q", d.Tags)
}
