// Package engine wires the calculation components into a single analysis:
// stat aggregation, team buffs, reaction detection, per-talent damage and
// build quality.
package engine

import (
	"context"
	"runtime"

	"github.com/udisondev/dmgcalc/internal/data"
	"github.com/udisondev/dmgcalc/internal/game/artifact"
	"github.com/udisondev/dmgcalc/internal/game/combat"
	"github.com/udisondev/dmgcalc/internal/game/quality"
	"github.com/udisondev/dmgcalc/internal/game/reaction"
	"github.com/udisondev/dmgcalc/internal/game/resonance"
	"github.com/udisondev/dmgcalc/internal/model"
)

// DamageComputer evaluates one damage formula input.
// Implementations may memoize; the result must depend on the input only.
type DamageComputer interface {
	ComputeDamage(ctx context.Context, in combat.Input) (model.DamageBreakdown, error)
}

// Defaults fill request fields left at zero.
type Defaults struct {
	CharacterLevel  int
	TalentLevel     int
	EnemyLevel      int
	EnemyResistance float64
}

// DefaultDefaults returns level 90 character and enemy, talent level 9 and
// 10% enemy resistance.
func DefaultDefaults() Defaults {
	return Defaults{
		CharacterLevel:  90,
		TalentLevel:     9,
		EnemyLevel:      90,
		EnemyResistance: 10,
	}
}

// Options configures an Engine.
type Options struct {
	// Workers bounds AnalyzeTeam concurrency; <= 0 means GOMAXPROCS.
	Workers  int
	Defaults Defaults
	// Middleware wraps the pure damage calculator, e.g. with a cache.
	Middleware func(DamageComputer) DamageComputer
}

// Engine runs analyses against one immutable table set.
// Safe for concurrent use.
type Engine struct {
	tables    *data.Tables
	detector  *reaction.Detector
	buffs     *resonance.Calculator
	quality   *quality.Evaluator
	artifacts *artifact.Resolver
	damage    DamageComputer
	workers   int
	defaults  Defaults
}

// New validates the tables and builds an Engine.
// Returns an ErrConfiguration error when a required table is missing.
func New(tables *data.Tables, opts Options) (*Engine, error) {
	if tables == nil {
		return nil, model.Configurationf("tables are nil")
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	defaults := opts.Defaults
	if defaults == (Defaults{}) {
		defaults = DefaultDefaults()
	}

	var damage DamageComputer = pureComputer{calc: combat.NewCalculator(tables, tables)}
	if opts.Middleware != nil {
		damage = opts.Middleware(damage)
	}

	return &Engine{
		tables:    tables,
		detector:  reaction.NewDetector(tables, tables.ReliableApplicators),
		buffs:     resonance.FromTables(tables),
		quality:   quality.NewEvaluator(tables.Quality),
		artifacts: artifact.NewResolver(tables.ArtifactSets),
		damage:    damage,
		workers:   workers,
		defaults:  defaults,
	}, nil
}

// Tables returns the table set the engine was built with.
func (e *Engine) Tables() *data.Tables {
	return e.tables
}

// Detector exposes the reaction detector for callers that only rank reactions.
func (e *Engine) Detector() *reaction.Detector {
	return e.detector
}

// Quality exposes the build quality evaluator.
func (e *Engine) Quality() *quality.Evaluator {
	return e.quality
}

type pureComputer struct {
	calc *combat.Calculator
}

func (p pureComputer) ComputeDamage(ctx context.Context, in combat.Input) (model.DamageBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return model.DamageBreakdown{}, err
	}
	return p.calc.ComputeDamage(in)
}
