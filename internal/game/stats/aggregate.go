// Package stats merges stat layers into a final stat block.
package stats

import (
	"fmt"

	"github.com/udisondev/dmgcalc/internal/model"
)

// RequiredBase lists the stats every base block must carry.
var RequiredBase = []model.Stat{
	model.BaseATK,
	model.BaseHP,
	model.BaseDEF,
	model.CritRate,
	model.CritDMG,
}

// Aggregate sums base, equipment and buff layers and derives total ATK/HP/DEF.
//
// Flat and percent contributions live under separate stat keys, so each is
// summed independently before the final conversion:
//
//	total_atk = (base_atk + flat_atk) × (1 + atk_percent/100)
//
// Crit rate is not clamped here; out-of-range buffs stay inspectable and are
// clamped by the damage formulas. Inputs are never modified.
func Aggregate(base model.StatBlock, equipment, buffs []model.StatBlock) (model.StatBlock, error) {
	for _, s := range RequiredBase {
		if _, ok := base.Get(s); !ok {
			return nil, model.Validationf("base stats missing %s", s)
		}
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	out := base.Clone()
	for _, layer := range [][]model.StatBlock{equipment, buffs} {
		for i, b := range layer {
			if err := b.Validate(); err != nil {
				return nil, fmt.Errorf("stat layer %d: %w", i, err)
			}
			out.Add(b)
		}
	}

	// Derived totals are recomputed, never summed from inputs.
	delete(out, model.TotalATK)
	delete(out, model.TotalHP)
	delete(out, model.TotalDEF)
	out[model.TotalATK] = out.TotalATK()
	out[model.TotalHP] = out.TotalHP()
	out[model.TotalDEF] = out.TotalDEF()

	return out, nil
}

// Merge layers extra buffs on top of an already aggregated block.
func Merge(aggregated model.StatBlock, buffs ...model.StatBlock) (model.StatBlock, error) {
	return Aggregate(aggregated, nil, buffs)
}
