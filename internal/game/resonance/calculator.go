// Package resonance derives team-wide buffs from elemental resonance and
// support characters.
package resonance

import (
	"github.com/udisondev/dmgcalc/internal/data"
	"github.com/udisondev/dmgcalc/internal/model"
)

// SourceKind tells where an applied buff came from.
type SourceKind string

const (
	SourceResonance SourceKind = "resonance"
	SourceSupport   SourceKind = "support"
)

// DefaultThreshold is the member count that activates an element resonance
// when the table leaves it unset.
const DefaultThreshold = 2

// AppliedBuff is one stat contribution in the team buff block.
type AppliedBuff struct {
	Kind SourceKind `yaml:"kind" json:"kind"`
	// Source is the resonance name or the providing character.
	Source string     `yaml:"source" json:"source"`
	Stat   model.Stat `yaml:"stat" json:"stat"`
	// Value is the effective contribution after uptime weighting.
	Value  float64 `yaml:"value" json:"value"`
	Uptime float64 `yaml:"uptime" json:"uptime"`
}

// Calculator computes team buffs. Tables are read, never written.
type Calculator struct {
	resonances map[model.Element]data.Resonance
	dispersion data.Resonance
	support    map[string][]data.SupportBuff
}

// NewCalculator creates a Calculator. support is keyed by normalized character name.
func NewCalculator(resonances map[model.Element]data.Resonance, dispersion data.Resonance, support map[string][]data.SupportBuff) *Calculator {
	return &Calculator{
		resonances: resonances,
		dispersion: dispersion,
		support:    support,
	}
}

// FromTables wires a Calculator to loaded tables.
func FromTables(t *data.Tables) *Calculator {
	return NewCalculator(t.Resonances, t.Dispersion, t.SupportBuffs)
}

// ComputeTeamBuffs returns the buff-only stat block for the team.
func (c *Calculator) ComputeTeamBuffs(team model.TeamComposition) (model.StatBlock, error) {
	block, _, err := c.ComputeTeamBuffsDetailed(team)
	return block, err
}

// ComputeTeamBuffsDetailed returns the buff block and every contribution in
// application order: resonances first (element order), then support buffs
// in team order.
func (c *Calculator) ComputeTeamBuffsDetailed(team model.TeamComposition) (model.StatBlock, []AppliedBuff, error) {
	if err := team.Validate(); err != nil {
		return nil, nil, err
	}

	var applied []AppliedBuff
	for _, r := range c.activeResonances(team) {
		for _, stat := range r.Buffs.Keys() {
			applied = append(applied, AppliedBuff{
				Kind:   SourceResonance,
				Source: r.Name,
				Stat:   stat,
				Value:  r.Buffs[stat],
				Uptime: 100,
			})
		}
	}

	for _, m := range team.Members {
		// Main DPS does not buff itself.
		if team.IsMainDPS(m.Name) {
			continue
		}
		for _, b := range c.support[model.NormalizeName(m.Name)] {
			applied = append(applied, AppliedBuff{
				Kind:   SourceSupport,
				Source: m.Name,
				Stat:   b.Stat,
				Value:  b.Value * b.Uptime / 100,
				Uptime: b.Uptime,
			})
		}
	}

	return sumBuffs(applied), applied, nil
}

// ComputeTeamBuffsFor returns the team buffs as received by recipient.
// Support buffs go to the rest of the team, so the recipient's own
// entries are dropped. Resonances always apply.
func (c *Calculator) ComputeTeamBuffsFor(team model.TeamComposition, recipient string) (model.StatBlock, []AppliedBuff, error) {
	_, applied, err := c.ComputeTeamBuffsDetailed(team)
	if err != nil {
		return nil, nil, err
	}
	block, received := ForRecipient(applied, recipient)
	return block, received, nil
}

// ForRecipient filters applied down to what recipient receives and sums it.
func ForRecipient(applied []AppliedBuff, recipient string) (model.StatBlock, []AppliedBuff) {
	self := model.NormalizeName(recipient)
	received := make([]AppliedBuff, 0, len(applied))
	for _, a := range applied {
		if a.Kind == SourceSupport && model.NormalizeName(a.Source) == self {
			continue
		}
		received = append(received, a)
	}
	return sumBuffs(received), received
}

func sumBuffs(applied []AppliedBuff) model.StatBlock {
	block := make(model.StatBlock, len(applied))
	for _, a := range applied {
		block[a.Stat] += a.Value
	}
	return block
}

// ActiveResonances returns the resonances the team triggers.
func (c *Calculator) ActiveResonances(team model.TeamComposition) ([]data.Resonance, error) {
	if err := team.Validate(); err != nil {
		return nil, err
	}
	return c.activeResonances(team), nil
}

func (c *Calculator) activeResonances(team model.TeamComposition) []data.Resonance {
	counts := team.ElementCounts()
	if c.dispersion.Threshold > 0 && len(team.Members) == model.MaxTeamSize && len(counts) >= c.dispersion.Threshold {
		return []data.Resonance{c.dispersion}
	}

	var out []data.Resonance
	for _, e := range model.Elements {
		r, ok := c.resonances[e]
		if !ok {
			continue
		}
		threshold := r.Threshold
		if threshold < 1 {
			threshold = DefaultThreshold
		}
		if counts[e] >= threshold {
			out = append(out, r)
		}
	}
	return out
}
