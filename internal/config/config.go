// Package config provides Viper-based configuration loading for the wasteland
// rules engine.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/wasteland/internal/game/character"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path.
	Output string `mapstructure:"output"`
}

// ContentConfig holds the directories of the YAML content definitions.
type ContentConfig struct {
	ItemsDir    string `mapstructure:"items_dir"`
	PerksDir    string `mapstructure:"perks_dir"`
	CrittersDir string `mapstructure:"critters_dir"`
}

// RulesConfig holds the game constants used to create characters and derive
// their stats.
type RulesConfig struct {
	DefaultArmor             string `mapstructure:"default_armor"`
	DefaultWeapon            string `mapstructure:"default_weapon"`
	ProtectDefaults          bool   `mapstructure:"protect_defaults"`
	HealthBonusHuman         int    `mapstructure:"health_bonus_human"`
	HealthBonusPlayer        int    `mapstructure:"health_bonus_player"`
	CarryWeightBase          int    `mapstructure:"carry_weight_base"`
	CarryWeightStrengthMult  int    `mapstructure:"carry_weight_strength_mult"`
	HealthEnduranceMult      int    `mapstructure:"health_endurance_mult"`
	HealthLevelMult          int    `mapstructure:"health_level_mult"`
	RadResEnduranceMult      int    `mapstructure:"rad_res_endurance_mult"`
	ActionPointsBase         int    `mapstructure:"action_points_base"`
	ExpMultBase              int    `mapstructure:"exp_mult_base"`
	ExpMultIntelligenceBonus int    `mapstructure:"exp_mult_intelligence_bonus"`
	AttributeBaseline        int    `mapstructure:"attribute_baseline"`
}

// Formulas returns the derived-stat constants.
func (r RulesConfig) Formulas() character.Formulas {
	return character.Formulas{
		CarryWeightBase:          r.CarryWeightBase,
		CarryWeightStrengthMult:  r.CarryWeightStrengthMult,
		HealthEnduranceMult:      r.HealthEnduranceMult,
		HealthLevelMult:          r.HealthLevelMult,
		RadResEnduranceMult:      r.RadResEnduranceMult,
		ActionPointsBase:         r.ActionPointsBase,
		ExpMultBase:              r.ExpMultBase,
		ExpMultIntelligenceBonus: r.ExpMultIntelligenceBonus,
		AttributeBaseline:        r.AttributeBaseline,
	}
}

// CreationRules returns the character-creation constants.
func (r RulesConfig) CreationRules() character.Rules {
	return character.Rules{
		DefaultArmor:      r.DefaultArmor,
		DefaultWeapon:     r.DefaultWeapon,
		HealthBonusHuman:  r.HealthBonusHuman,
		HealthBonusPlayer: r.HealthBonusPlayer,
		ProtectDefaults:   r.ProtectDefaults,
	}
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Content ContentConfig `mapstructure:"content"`
	Rules   RulesConfig   `mapstructure:"rules"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRules(c.Rules); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return fmt.Errorf("logging.output must not be empty")
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.ItemsDir == "" {
		errs = append(errs, "content.items_dir must not be empty")
	}
	if c.PerksDir == "" {
		errs = append(errs, "content.perks_dir must not be empty")
	}
	if c.CrittersDir == "" {
		errs = append(errs, "content.critters_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRules(r RulesConfig) error {
	var errs []string
	if r.DefaultArmor == "" {
		errs = append(errs, "rules.default_armor must not be empty")
	}
	if r.DefaultWeapon == "" {
		errs = append(errs, "rules.default_weapon must not be empty")
	}
	for name, v := range map[string]int{
		"health_bonus_human":          r.HealthBonusHuman,
		"health_bonus_player":         r.HealthBonusPlayer,
		"carry_weight_base":           r.CarryWeightBase,
		"carry_weight_strength_mult":  r.CarryWeightStrengthMult,
		"health_endurance_mult":       r.HealthEnduranceMult,
		"health_level_mult":           r.HealthLevelMult,
		"rad_res_endurance_mult":      r.RadResEnduranceMult,
		"action_points_base":          r.ActionPointsBase,
		"exp_mult_base":               r.ExpMultBase,
		"exp_mult_intelligence_bonus": r.ExpMultIntelligenceBonus,
		"attribute_baseline":          r.AttributeBaseline,
	} {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("rules.%s must be >= 0, got %d", name, v))
		}
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with WASTELAND_ prefix
	v.SetEnvPrefix("WASTELAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default configuration.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("content.items_dir", "content/items")
	v.SetDefault("content.perks_dir", "content/perks")
	v.SetDefault("content.critters_dir", "content/critters")

	f := character.DefaultFormulas()
	r := character.DefaultRules()
	v.SetDefault("rules.default_armor", r.DefaultArmor)
	v.SetDefault("rules.default_weapon", r.DefaultWeapon)
	v.SetDefault("rules.protect_defaults", r.ProtectDefaults)
	v.SetDefault("rules.health_bonus_human", r.HealthBonusHuman)
	v.SetDefault("rules.health_bonus_player", r.HealthBonusPlayer)
	v.SetDefault("rules.carry_weight_base", f.CarryWeightBase)
	v.SetDefault("rules.carry_weight_strength_mult", f.CarryWeightStrengthMult)
	v.SetDefault("rules.health_endurance_mult", f.HealthEnduranceMult)
	v.SetDefault("rules.health_level_mult", f.HealthLevelMult)
	v.SetDefault("rules.rad_res_endurance_mult", f.RadResEnduranceMult)
	v.SetDefault("rules.action_points_base", f.ActionPointsBase)
	v.SetDefault("rules.exp_mult_base", f.ExpMultBase)
	v.SetDefault("rules.exp_mult_intelligence_bonus", f.ExpMultIntelligenceBonus)
	v.SetDefault("rules.attribute_baseline", f.AttributeBaseline)
}
