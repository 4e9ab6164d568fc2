// Package artifact resolves artifact set bonuses into an equipment stat block.
package artifact

import (
	"slices"

	"github.com/udisondev/dmgcalc/internal/data"
	"github.com/udisondev/dmgcalc/internal/model"
)

// MaxPieces is the number of artifact slots.
const MaxPieces = 5

// ActiveBonus is a set effect unlocked by the equipped pieces.
type ActiveBonus struct {
	Set         string `yaml:"set" json:"set"`
	Pieces      int    `yaml:"pieces" json:"pieces"`
	Description string `yaml:"description" json:"description"`
}

// Resolver applies set bonuses from the set table.
type Resolver struct {
	sets map[string][]data.SetBonus
}

// NewResolver creates a Resolver. sets is keyed by normalized set name.
func NewResolver(sets map[string][]data.SetBonus) *Resolver {
	return &Resolver{sets: sets}
}

// CountPieces counts equipped pieces per normalized set name.
// Empty names are off-set pieces and are skipped.
func CountPieces(pieces []string) map[string]int {
	counts := make(map[string]int, len(pieces))
	for _, p := range pieces {
		if name := model.NormalizeName(p); name != "" {
			counts[name]++
		}
	}
	return counts
}

// Apply returns the stat block granted by the equipped set pieces and the
// bonuses that were unlocked, ordered by set name then piece count.
func (r *Resolver) Apply(pieces []string) (model.StatBlock, []ActiveBonus, error) {
	if len(pieces) > MaxPieces {
		return nil, nil, model.Validationf("at most %d artifact pieces, got %d", MaxPieces, len(pieces))
	}

	counts := CountPieces(pieces)
	names := make([]string, 0, len(counts))
	for name := range counts {
		if _, ok := r.sets[name]; !ok {
			return nil, nil, model.NewNotFound("artifact set", name)
		}
		names = append(names, name)
	}
	slices.Sort(names)

	block := model.StatBlock{}
	var active []ActiveBonus
	for _, name := range names {
		for _, bonus := range r.sets[name] {
			if counts[name] < bonus.Pieces {
				continue
			}
			block.Add(bonus.Stats)
			active = append(active, ActiveBonus{Set: name, Pieces: bonus.Pieces, Description: bonus.Description})
		}
	}
	return block, active, nil
}
