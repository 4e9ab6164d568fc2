package combat

import (
	"math"

	"github.com/udisondev/dmgcalc/internal/model"
)

// Level bounds accepted by the formula.
const (
	MinLevel = 1
	// MaxResistance bounds enemy RES% on both sides.
	MaxResistance = 100
)

// ValidateInput validates a damage request before any table lookup.
// Returns a ValidationError if the request cannot be evaluated.
//
// Checks:
//   - character and talent are set
//   - talent, character and enemy levels are >= 1
//   - enemy resistance within [-100, 100]
//   - enemy DEF reduction within [0, 100]
//   - crit_rate and crit_dmg present, all stats finite
//   - crit_dmg and elemental_mastery not negative
func ValidateInput(in Input) error {
	if in.Character == "" {
		return model.Validationf("character is required")
	}
	if in.Talent == "" {
		return model.Validationf("talent is required")
	}
	if in.TalentLevel < MinLevel {
		return model.Validationf("talent level %d < %d", in.TalentLevel, MinLevel)
	}
	if in.CharacterLevel < MinLevel {
		return model.Validationf("character level %d < %d", in.CharacterLevel, MinLevel)
	}
	if err := ValidateEnemy(in.Enemy); err != nil {
		return err
	}
	if _, ok := in.Stats.Get(model.CritRate); !ok {
		return model.Validationf("missing stat %s", model.CritRate)
	}
	cd, ok := in.Stats.Get(model.CritDMG)
	if !ok {
		return model.Validationf("missing stat %s", model.CritDMG)
	}
	if err := in.Stats.Validate(); err != nil {
		return err
	}
	if cd < 0 {
		return model.Validationf("%s %v is negative", model.CritDMG, cd)
	}
	if em := in.Stats[model.ElementalMastery]; em < 0 {
		return model.Validationf("%s %v is negative", model.ElementalMastery, em)
	}
	return nil
}

// ValidateEnemy checks enemy level, resistance and DEF reduction bounds.
func ValidateEnemy(e Enemy) error {
	if e.Level < MinLevel {
		return model.Validationf("enemy level %d < %d", e.Level, MinLevel)
	}
	if math.IsNaN(e.Resistance) || e.Resistance < -MaxResistance || e.Resistance > MaxResistance {
		return model.Validationf("enemy resistance %v outside [-%d, %d]", e.Resistance, MaxResistance, MaxResistance)
	}
	if math.IsNaN(e.DefReduction) || e.DefReduction < 0 || e.DefReduction > 100 {
		return model.Validationf("enemy def reduction %v outside [0, 100]", e.DefReduction)
	}
	return nil
}
