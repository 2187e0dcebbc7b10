package character

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cory-johannsen/wasteland/internal/game/inventory"
	"github.com/cory-johannsen/wasteland/internal/game/perk"
	"github.com/cory-johannsen/wasteland/internal/game/tag"
	"gopkg.in/yaml.v3"
)

// Rules holds the character-creation constants.
type Rules struct {
	DefaultArmor      string
	DefaultWeapon     string
	HealthBonusHuman  int
	HealthBonusPlayer int
	// ProtectDefaults makes the default armor and weapon impossible to
	// unequip or move out of their slots.
	ProtectDefaults bool
}

// DefaultRules returns the standard creation constants.
func DefaultRules() Rules {
	return Rules{
		DefaultArmor:      "clothes",
		DefaultWeapon:     "unarmed",
		HealthBonusHuman:  10,
		HealthBonusPlayer: 20,
		ProtectDefaults:   true,
	}
}

// Spec describes a character to build. Zero-valued optional fields take
// defaults: Level 1, every skill 1, the default armor and weapon.
type Spec struct {
	Name       string     `yaml:"name"`
	Tags       tag.Set    `yaml:"tags"`
	Level      int        `yaml:"level"`
	Attributes Attributes `yaml:"attributes"`
	Skills     *Skills    `yaml:"skills"`
	Armor      string     `yaml:"armor"`
	Weapon     string     `yaml:"weapon"`
	Perks      []string   `yaml:"perks"`
	Items      []string   `yaml:"items"`
}

// Validate checks that s satisfies its invariants.
func (s *Spec) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if s.Level < 0 {
		errs = append(errs, errors.New("level must be >= 0"))
	}
	for _, name := range AttributeNames {
		if v, _ := s.Attributes.Get(name); v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0", name))
		}
	}
	if s.Skills != nil {
		for _, name := range SkillNames {
			if v, _ := s.Skills.Get(name); v < 0 {
				errs = append(errs, fmt.Errorf("%s must be >= 0", name))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("character %q validation failed: %w", s.Name, errors.Join(errs...))
	}
	return nil
}

// Builder assembles characters, creating their equipment and perks through
// the item and perk factories.
type Builder struct {
	items inventory.ItemFactory
	perks perk.PerkFactory
	stats *StatResolver
	rules Rules
}

// NewBuilder returns a Builder.
//
// Precondition: items, perks and stats are non-nil.
func NewBuilder(items inventory.ItemFactory, perks perk.PerkFactory, stats *StatResolver, rules Rules) *Builder {
	return &Builder{items: items, perks: perks, stats: stats, rules: rules}
}

// Human builds a Human from s, tagged "human".
//
// Postcondition: Health == MaxHealth and ActionPoints == MaxAP.
func (b *Builder) Human(s Spec) (*Human, error) {
	h := &Human{}
	if err := b.fill(&h.Sheet, s, b.rules.HealthBonusHuman, "human"); err != nil {
		return nil, err
	}
	h.Skills = skillsOrDefault(s.Skills)
	b.restore(h)
	return h, nil
}

// Player builds a Player from s, tagged "human" and "player".
//
// Postcondition: Health == MaxHealth and ActionPoints == MaxAP.
func (b *Builder) Player(s Spec) (*Player, error) {
	p := &Player{}
	if err := b.fill(&p.Sheet, s, b.rules.HealthBonusPlayer, "human", "player"); err != nil {
		return nil, err
	}
	p.Skills = skillsOrDefault(s.Skills)
	b.restore(p)
	return p, nil
}

// Critter builds a Critter from def, tagged "critter".
//
// Postcondition: Health == MaxHealth and ActionPoints == MaxAP.
func (b *Builder) Critter(def *CritterDef) (*Critter, error) {
	c := &Critter{ExpAward: def.ExpAward}
	if err := b.fill(&c.Sheet, def.Spec, def.HealthBonus, "critter"); err != nil {
		return nil, err
	}
	b.restore(c)
	return c, nil
}

// restore sets c's current health and action points to their maximums.
func (b *Builder) restore(c Character) {
	base := c.Base()
	base.Health = b.stats.MaxHealth(c)
	base.ActionPoints = b.stats.MaxAP(c)
}

func (b *Builder) fill(base *Sheet, s Spec, healthBonus int, kindTags ...string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	armorID := cmp.Or(s.Armor, b.rules.DefaultArmor)
	weaponID := cmp.Or(s.Weapon, b.rules.DefaultWeapon)

	armorItem, err := b.items.Create(armorID)
	if err != nil {
		return fmt.Errorf("character %q: armor: %w", s.Name, err)
	}
	armor, ok := armorItem.(*inventory.Armor)
	if !ok {
		return fmt.Errorf("character %q: %q is not armor", s.Name, armorID)
	}
	weaponItem, err := b.items.Create(weaponID)
	if err != nil {
		return fmt.Errorf("character %q: weapon: %w", s.Name, err)
	}
	weapon, ok := weaponItem.(inventory.Weapon)
	if !ok {
		return fmt.Errorf("character %q: %q is not a weapon", s.Name, weaponID)
	}

	var defaults inventory.Defaults
	if b.rules.ProtectDefaults {
		defaults = inventory.Defaults{ArmorID: b.rules.DefaultArmor, WeaponID: b.rules.DefaultWeapon}
	}
	inv := inventory.New(armor, weapon, defaults)
	for _, id := range s.Items {
		item, err := b.items.Create(id)
		if err != nil {
			return fmt.Errorf("character %q: item: %w", s.Name, err)
		}
		if err := inv.Add(item); err != nil {
			return fmt.Errorf("character %q: item %q: %w", s.Name, id, err)
		}
	}

	perks := perk.NewList()
	for _, id := range s.Perks {
		p, err := b.perks.Create(id)
		if err != nil {
			return fmt.Errorf("character %q: perk: %w", s.Name, err)
		}
		if err := perks.Add(p); err != nil {
			return fmt.Errorf("character %q: perk %q: %w", s.Name, id, err)
		}
	}

	*base = Sheet{
		Name:        s.Name,
		Tags:        s.Tags.With(kindTags...),
		Level:       max(1, s.Level),
		Attributes:  s.Attributes,
		HealthBonus: healthBonus,
		Inventory:   inv,
		Perks:       perks,
	}
	return nil
}

func skillsOrDefault(s *Skills) Skills {
	if s == nil {
		return DefaultSkills()
	}
	return *s
}

// CritterDef is the static definition of a critter, loaded from YAML.
type CritterDef struct {
	ID          string `yaml:"id"`
	Spec        `yaml:",inline"`
	HealthBonus int `yaml:"health_bonus"`
	ExpAward    int `yaml:"exp_award"`
}

type critterFile struct {
	Critters []*CritterDef `yaml:"critters"`
}

// LoadCritters reads every *.yaml and *.yml file in dir and returns the
// validated critter definitions keyed by id.
//
// Precondition: dir must be a readable directory.
func LoadCritters(dir string) (map[string]*CritterDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadCritters: cannot read directory %q: %w", dir, err)
	}
	out := make(map[string]*CritterDef)
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadCritters: cannot read file %q: %w", path, err)
		}
		var f critterFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("LoadCritters: cannot parse file %q: %w", path, err)
		}
		for _, d := range f.Critters {
			if d.ID == "" {
				return nil, fmt.Errorf("LoadCritters: %q: critter id must not be empty", path)
			}
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("LoadCritters: %q: %w", path, err)
			}
			if _, dup := out[d.ID]; dup {
				return nil, fmt.Errorf("LoadCritters: critter ID %q already defined", d.ID)
			}
			out[d.ID] = d
		}
	}
	return out, nil
}
