// Package main runs a small combat simulation: it loads the configuration and
// content, builds a player and a critter, and lets them trade blows until one
// falls or the round limit is reached.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wasteland/internal/config"
	"github.com/cory-johannsen/wasteland/internal/game/character"
	"github.com/cory-johannsen/wasteland/internal/game/combat"
	"github.com/cory-johannsen/wasteland/internal/game/dice"
	"github.com/cory-johannsen/wasteland/internal/game/inventory"
	"github.com/cory-johannsen/wasteland/internal/game/perk"
	"github.com/cory-johannsen/wasteland/internal/observability"
)

func main() {
	start := time.Now()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seed := flag.Uint64("seed", 0, "seed for reproducible rolls; 0 uses crypto/rand")
	weapon := flag.String("weapon", "pistol_10mm", "player weapon id")
	critterID := flag.String("critter", "raider", "opponent critter id")
	rounds := flag.Int("rounds", 10, "maximum number of rounds")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	items, err := inventory.NewRegistryFromDir(cfg.Content.ItemsDir)
	if err != nil {
		logger.Fatal("loading items", zap.Error(err))
	}
	perks, err := perk.LoadDirectory(cfg.Content.PerksDir)
	if err != nil {
		logger.Fatal("loading perks", zap.Error(err))
	}
	critters, err := character.LoadCritters(cfg.Content.CrittersDir)
	if err != nil {
		logger.Fatal("loading critters", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("items", items.Len()),
		zap.Int("perks", len(perks.All())),
		zap.Int("critters", len(critters)),
	)

	stats := character.NewStatResolver(cfg.Rules.Formulas())
	builder := character.NewBuilder(items, perks, stats, cfg.Rules.CreationRules())
	resolver := combat.NewResolver(stats, observability.Component(logger, "combat"))

	src := dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	roller := dice.NewLoggedRoller(src, observability.Component(logger, "dice"))

	player, err := builder.Player(character.Spec{
		Name:       "Wanderer",
		Attributes: character.Attributes{Strength: 5, Endurance: 6, Agility: 6, Perception: 7, Intelligence: 5},
		Skills:     &character.Skills{Guns: 3, Energy: 1, Melee: 2, Sneak: 1, Security: 1, Mechanics: 1, Survival: 2, Medicine: 1},
		Armor:      "leather_jacket",
		Weapon:     *weapon,
		Items:      []string{"ammo_10mm", "microfusion_cell", "stimpak"},
		Perks:      []string{"gunslinger", "bloody_mess", "skilled"},
	})
	if err != nil {
		logger.Fatal("building player", zap.Error(err))
	}
	def, ok := critters[*critterID]
	if !ok {
		logger.Fatal("unknown critter", zap.String("critter", *critterID))
	}
	foe, err := builder.Critter(def)
	if err != nil {
		logger.Fatal("building critter", zap.Error(err))
	}

	printSheet(stats, player)
	printSheet(stats, foe)

	fighters := []character.Character{player, foe}
	for round := 1; round <= *rounds; round++ {
		fmt.Printf("\n-- Round %d --\n", round)
		for i, c := range fighters {
			opp := fighters[1-i]
			if err := takeTurn(resolver, stats, roller, perks, c, opp); err != nil {
				logger.Fatal("resolving turn", zap.String("character", c.Base().Name), zap.Error(err))
			}
			if opp.Base().Health == 0 {
				fmt.Printf("%s falls.\n", opp.Base().Name)
				logger.Info("simulation finished", zap.Int("rounds", round), zap.Duration("elapsed", time.Since(start)))
				return
			}
		}
	}
	logger.Info("simulation finished", zap.Int("rounds", *rounds), zap.Duration("elapsed", time.Since(start)))
}

// takeTurn restores c's action points, ticks its status effects and attacks
// opp until c runs out of action points or ammunition.
func takeTurn(r *combat.Resolver, stats *character.StatResolver, roller dice.RandomRoll,
	perks perk.PerkFactory, c, opp character.Character) error {
	b := c.Base()
	for _, id := range b.Perks.Tick() {
		fmt.Printf("%s recovers from %s.\n", b.Name, id)
	}
	b.ActionPoints = stats.MaxAP(c)

	for {
		hit, err := r.ResolveHit(c, opp, roller, perks)
		switch {
		case errors.Is(err, combat.ErrInsufficientAP):
			return nil
		case errors.Is(err, combat.ErrOutOfAmmo):
			if !reload(c) {
				return nil
			}
			continue
		case err != nil:
			return err
		}
		fmt.Printf("%s hits %s for %d (%s rolled %d)", hit.Attacker, hit.Target, hit.Damage, hit.Formula.Canonical(), hit.Rolled)
		if hit.Effect != "" {
			fmt.Printf(", inflicting %s", hit.Effect)
		}
		fmt.Printf(". %s has %d health left.\n", hit.Target, hit.TargetHealth)
		if hit.Killed() || hit.APSpent <= 0 {
			return nil
		}
	}
}

// reload reloads c's weapon and reports whether it now holds a round.
func reload(c character.Character) bool {
	b := c.Base()
	w := b.Inventory.Weapon()
	if err := b.Inventory.Reload(w); err != nil {
		fmt.Printf("%s cannot reload %s: %v\n", b.Name, w.Core().Name, err)
		return false
	}
	fmt.Printf("%s reloads %s.\n", b.Name, w.Core().Name)
	return true
}

func printSheet(stats *character.StatResolver, c character.Character) {
	b := c.Base()
	a := stats.EffectiveAttributes(c)
	fmt.Printf("== %s (level %d, %s) ==\n", b.Name, b.Level, b.Tags)
	fmt.Printf("STR %d  END %d  AGI %d  PER %d  INT %d\n", a.Strength, a.Endurance, a.Agility, a.Perception, a.Intelligence)
	fmt.Printf("Health %d  AP %d  Carry %d  Evasion %d  RadRes %d  Melee +%d  Exp %d%%\n",
		b.Health, b.ActionPoints, stats.CarryWeight(c), stats.Evasion(c), stats.RadRes(c), stats.MeleeBonus(c), stats.ExpMult(c))
	if stats.Encumbered(c) {
		fmt.Println("Encumbered!")
	}
	fmt.Println(b.Inventory)
	fmt.Println(b.Perks)
}
