package inventory

//go:generate mockgen -destination=mock/mock_registry.go -package=mockinventory -source=registry.go

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/tag"
	"gopkg.in/yaml.v3"
)

// ItemFactory produces fresh item instances by definition id.
type ItemFactory interface {
	// Create returns a new, independent item built from definition id.
	//
	// Postcondition: returns an error wrapping ErrBuild when id is unknown.
	Create(id string) (Item, error)
}

// Kind names the item variant an ItemDef builds.
type Kind string

// Kind constants, selected from a definition's tags by KindOf.
const (
	KindArmor      Kind = "armor"
	KindMelee      Kind = "melee"
	KindRanged     Kind = "ranged"
	KindAmmo       Kind = "ammo"
	KindConsumable Kind = "consumable"
)

// KindOf selects the variant for a tag set. Tags are checked in the order
// armor, melee, gun or energy, ammo, consumable.
//
// Postcondition: ok is false when no type tag is present.
func KindOf(tags tag.Set) (Kind, bool) {
	switch {
	case tags.Has("armor"):
		return KindArmor, true
	case tags.Has("melee"):
		return KindMelee, true
	case tags.HasAny("gun", "energy"):
		return KindRanged, true
	case tags.Has("ammo"):
		return KindAmmo, true
	case tags.Has("consumable"):
		return KindConsumable, true
	}
	return "", false
}

// ItemDef defines the static properties of an item loaded from YAML.
// Fields that do not apply to the definition's Kind are ignored.
type ItemDef struct {
	ID          string  `yaml:"id"`
	Tags        tag.Set `yaml:"tags"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Value       int     `yaml:"value"`
	Weight      float64 `yaml:"weight"`

	// armor
	DamageRes int `yaml:"damage_resistance"`
	RadRes    int `yaml:"radiation_resistance"`
	Evasion   int `yaml:"evasion"`

	// weapons
	Damage       string `yaml:"damage"`
	ArmorPen     int    `yaml:"armor_penetration"`
	Accuracy     int    `yaml:"accuracy"`
	APCost       int    `yaml:"action_points_cost"`
	StrengthReq  int    `yaml:"strength_requirement"`
	Effect       string `yaml:"effect"`
	EffectChance string `yaml:"effect_chance"`
	AmmoType     string `yaml:"ammo_type"`
	ClipSize     int    `yaml:"clip_size"`

	// stackables
	MaxStack int `yaml:"max_stack"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff every field required by the def's Kind is valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("weight must be >= 0"))
	}
	kind, ok := KindOf(d.Tags)
	if !ok {
		errs = append(errs, fmt.Errorf("tags %q name no item type", d.Tags))
	}
	switch kind {
	case KindMelee, KindRanged:
		if _, err := dice.Parse(d.Damage); err != nil {
			errs = append(errs, fmt.Errorf("damage: %w", err))
		}
		if d.APCost < 0 {
			errs = append(errs, errors.New("action_points_cost must be >= 0"))
		}
	case KindAmmo, KindConsumable:
		if d.MaxStack < 1 {
			errs = append(errs, errors.New("max_stack must be >= 1"))
		}
	}
	if kind == KindMelee && d.EffectChance != "" && d.EffectChance != "0" {
		if _, err := dice.Parse(d.EffectChance); err != nil {
			errs = append(errs, fmt.Errorf("effect_chance: %w", err))
		}
	}
	if kind == KindRanged {
		if d.AmmoType == "" {
			errs = append(errs, errors.New("ammo_type is required for ranged weapons"))
		}
		if d.ClipSize < 1 {
			errs = append(errs, errors.New("clip_size must be >= 1"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// itemFile is the on-disk layout of one content file.
type itemFile struct {
	Items []*ItemDef `yaml:"items"`
}

// LoadItems reads all *.yaml and *.yml files from dir and returns every
// validated ItemDef, sorted by id.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var defs []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		fileDefs, err := decodeItems(data)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: %q: %w", path, err)
		}
		defs = append(defs, fileDefs...)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}

func decodeItems(data []byte) ([]*ItemDef, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f itemFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot parse: %w", err)
	}
	for _, d := range f.Items {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Items, nil
}

// Registry holds item definitions indexed by id and builds instances of them.
// Registry implements ItemFactory.
type Registry struct {
	defs map[string]*ItemDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*ItemDef)}
}

// NewRegistryFromDir loads every definition under dir into a new Registry.
//
// Postcondition: returns a populated Registry or the first load/registration error.
func NewRegistryFromDir(dir string) (*Registry, error) {
	defs, err := LoadItems(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds d to the registry.
//
// Precondition: d must not be nil.
// Postcondition: Def(d.ID) returns (d, true); returns error if d.ID already registered.
func (r *Registry) Register(d *ItemDef) error {
	if _, exists := r.defs[d.ID]; exists {
		return fmt.Errorf("inventory: Registry.Register: item ID %q already registered", d.ID)
	}
	r.defs[d.ID] = d
	return nil
}

// Def returns the ItemDef for the given id and whether it was found.
func (r *Registry) Def(id string) (*ItemDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.defs) }

// Create builds a fresh instance of definition id. Ammo and consumables start
// at a full stack; ranged weapons start unloaded.
//
// Postcondition: returns an error wrapping ErrBuild when id is unknown or its
// definition cannot be converted.
func (r *Registry) Create(id string) (Item, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown item %q", ErrBuild, id)
	}
	item, err := build(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBuild, id, err)
	}
	return item, nil
}

func build(d *ItemDef) (Item, error) {
	core := ItemCore{
		ID:          d.ID,
		Tags:        d.Tags.Union(),
		Name:        d.Name,
		Description: d.Description,
		Value:       d.Value,
		Weight:      d.Weight,
	}
	kind, ok := KindOf(d.Tags)
	if !ok {
		return nil, fmt.Errorf("incorrect item type tags %q", d.Tags)
	}
	switch kind {
	case KindArmor:
		return &Armor{ItemCore: core, DamageRes: d.DamageRes, RadRes: d.RadRes, Evasion: d.Evasion}, nil
	case KindMelee:
		wc, err := weaponCore(d)
		if err != nil {
			return nil, err
		}
		m := &MeleeWeapon{ItemCore: core, WeaponCore: wc, Effect: d.Effect}
		if d.EffectChance != "" && d.EffectChance != "0" {
			chance, err := dice.Parse(d.EffectChance)
			if err != nil {
				return nil, err
			}
			m.EffectChance = &chance
		}
		return m, nil
	case KindRanged:
		wc, err := weaponCore(d)
		if err != nil {
			return nil, err
		}
		return &RangedWeapon{ItemCore: core, WeaponCore: wc, AmmoType: d.AmmoType, ClipSize: d.ClipSize}, nil
	case KindAmmo:
		return &Ammo{ItemCore: core, StackableCore: fullStack(d.MaxStack)}, nil
	default:
		return &Consumable{ItemCore: core, StackableCore: fullStack(d.MaxStack), Effect: d.Effect}, nil
	}
}

func weaponCore(d *ItemDef) (WeaponCore, error) {
	dmg, err := dice.Parse(d.Damage)
	if err != nil {
		return WeaponCore{}, err
	}
	return WeaponCore{
		Damage:      dmg,
		ArmorPen:    d.ArmorPen,
		Accuracy:    d.Accuracy,
		APCost:      d.APCost,
		StrengthReq: d.StrengthReq,
	}, nil
}

func fullStack(maxStack int) StackableCore {
	return StackableCore{MaxStack: maxStack, amount: maxStack}
}
