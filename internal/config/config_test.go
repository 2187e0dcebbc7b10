package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wasteland/internal/game/character"
)

func validConfig() Config {
	cfg, err := LoadFromViper(Defaults())
	if err != nil {
		panic(err)
	}
	return cfg
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "content/items", cfg.Content.ItemsDir)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestDefaultsMatchRules(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, character.DefaultFormulas(), cfg.Rules.Formulas())
	assert.Equal(t, character.DefaultRules(), cfg.Rules.CreationRules())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: console
content:
  items_dir: /srv/items
  perks_dir: /srv/perks
  critters_dir: /srv/critters
rules:
  default_armor: rags
  health_bonus_player: 25
  protect_defaults: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/perks", cfg.Content.PerksDir)
	assert.Equal(t, "rags", cfg.Rules.DefaultArmor)
	assert.Equal(t, "unarmed", cfg.Rules.DefaultWeapon)
	assert.Equal(t, 25, cfg.Rules.CreationRules().HealthBonusPlayer)
	assert.False(t, cfg.Rules.ProtectDefaults)
	assert.Equal(t, 10, cfg.Rules.Formulas().CarryWeightBase)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")
	t.Setenv("WASTELAND_RULES_ACTION_POINTS_BASE", "12")
	t.Setenv("WASTELAND_LOGGING_FORMAT", "console")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Rules.ActionPointsBase)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, "rules:\n  carry_weight_base: -1\n"))
	assert.ErrorContains(t, err, "rules.carry_weight_base")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateContentDirs(t *testing.T) {
	cfg := validConfig()
	cfg.Content = ContentConfig{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.items_dir")
	assert.Contains(t, err.Error(), "content.perks_dir")
	assert.Contains(t, err.Error(), "content.critters_dir")
}

func TestValidateDefaultItems(t *testing.T) {
	cfg := validConfig()
	cfg.Rules.DefaultArmor = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Rules.DefaultWeapon = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Rules.HealthBonusHuman = -1
	cfg.Rules.ExpMultBase = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "rules.health_bonus_human")
	assert.Contains(t, err.Error(), "rules.exp_mult_base")
}

func TestPropertyNonNegativeRulesAlwaysValid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := validConfig()
		cfg.Rules.CarryWeightBase = rapid.IntRange(0, 1000).Draw(rt, "carry_weight_base")
		cfg.Rules.HealthLevelMult = rapid.IntRange(0, 100).Draw(rt, "health_level_mult")
		cfg.Rules.ActionPointsBase = rapid.IntRange(0, 100).Draw(rt, "action_points_base")
		assert.NoError(rt, cfg.Validate())
	})
}

func TestPropertyNegativeRuleAlwaysInvalid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := validConfig()
		cfg.Rules.RadResEnduranceMult = rapid.IntRange(-1000, -1).Draw(rt, "rad_res_endurance_mult")
		assert.Error(rt, cfg.Validate())
	})
}
