package combat

import (
	"fmt"
	"math"

	"github.com/udisondev/dmgcalc/internal/model"
)

// TalentTable resolves talent scaling data.
type TalentTable interface {
	Talent(character string, talent model.TalentKind) (model.TalentInfo, error)
	TalentMultiplier(character string, talent model.TalentKind, level int) (float64, error)
}

// LevelTable resolves the transformative level multiplier.
type LevelTable interface {
	ReactionLevelMultiplier(level int) (float64, error)
}

// Enemy describes the defending side.
type Enemy struct {
	Level int `yaml:"level" json:"level"`
	// Resistance is the enemy RES% against the damage element.
	Resistance float64 `yaml:"resistance" json:"resistance"`
	// DefReduction is the DEF% removed by debuffs, 0..100.
	DefReduction float64 `yaml:"def_reduction" json:"def_reduction"`
}

// Input is one damage formula evaluation request.
type Input struct {
	Character      string                   `json:"character"`
	Talent         model.TalentKind         `json:"talent"`
	TalentLevel    int                      `json:"talent_level"`
	CharacterLevel int                      `json:"character_level"`
	Stats          model.StatBlock          `json:"stats"`
	Enemy          Enemy                    `json:"enemy"`
	Reaction       *model.ReactionCandidate `json:"reaction,omitempty"`
}

// Calculator evaluates the damage formula against injected tables.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	talents TalentTable
	levels  LevelTable
}

// NewCalculator creates a damage calculator.
func NewCalculator(talents TalentTable, levels LevelTable) *Calculator {
	return &Calculator{talents: talents, levels: levels}
}

// ComputeDamage evaluates the damage formula for one talent.
//
// Pipeline:
//
//	base     = scaling value × talent multiplier / 100
//	amp      = amplifying reaction multiplier (1.0 when none)
//	additive = additive_base_dmg + <talent>_flat_dmg + additive reaction damage
//	bonus    = max(0, 1 + (element bonus + dmg_bonus + <talent>_dmg_bonus) / 100)
//	nonCrit  = max(0, base × amp + additive) × bonus × DEF × RES
//	crit     = nonCrit × (1 + crit_dmg/100)
//	average  = nonCrit × (1 − cr) + crit × cr,  cr = clamp(crit_rate, 0, 100)/100
//
// Transformative reactions are not part of the hit: their damage is reported
// in ReactionDamage with only the RES multiplier applied.
func (c *Calculator) ComputeDamage(in Input) (model.DamageBreakdown, error) {
	if err := ValidateInput(in); err != nil {
		return model.DamageBreakdown{}, err
	}

	info, err := c.talents.Talent(in.Character, in.Talent)
	if err != nil {
		return model.DamageBreakdown{}, fmt.Errorf("resolving talent: %w", err)
	}
	multiplier, err := c.talents.TalentMultiplier(in.Character, in.Talent, in.TalentLevel)
	if err != nil {
		return model.DamageBreakdown{}, fmt.Errorf("resolving talent multiplier: %w", err)
	}

	s := in.Stats
	baseDMG := info.Scaling.ValueFrom(s) * multiplier / 100
	additive := s[model.AdditiveBaseDMG] + s[in.Talent.FlatDMGStat()]

	resMult := CalcResMultiplier(EffectiveResistance(in.Enemy.Resistance, s, info.Element))
	defMult := CalcDefMultiplier(in.CharacterLevel, in.Enemy.Level, EffectiveDefReduction(in.Enemy.DefReduction, s))
	dmgBonus := CalcDMGBonusMultiplier(s, info.Element, in.Talent)

	out := model.DamageBreakdown{ReactionMultiplier: 1}
	if in.Reaction != nil {
		rule := in.Reaction.Rule
		if rule.Trigger != info.Element {
			return model.DamageBreakdown{}, model.Validationf(
				"%s is triggered by %s, %s/%s deals %s damage",
				rule.Name, rule.Trigger, in.Character, in.Talent, info.Element)
		}
		em := s[model.ElementalMastery]
		bonus := s[model.ReactionBonus]
		out.Reaction = rule.Name
		out.ReactionCategory = rule.Category

		switch rule.Category {
		case model.Amplifying:
			out.ReactionMultiplier = CalcAmplifyingMultiplier(rule.BaseMultiplier, em, bonus)
		case model.Transformative:
			level, err := c.levels.ReactionLevelMultiplier(in.CharacterLevel)
			if err != nil {
				return model.DamageBreakdown{}, fmt.Errorf("resolving %s damage: %w", rule.Name, err)
			}
			out.ReactionDamage = CalcTransformativeDamage(level, rule.FlatMultiplier, em, bonus) * resMult
		case model.Additive:
			level, err := c.levels.ReactionLevelMultiplier(in.CharacterLevel)
			if err != nil {
				return model.DamageBreakdown{}, fmt.Errorf("resolving %s damage: %w", rule.Name, err)
			}
			additive += CalcAdditiveDamage(level, rule.FlatMultiplier, em, bonus)
		}
	}

	// debuffs may drive the hit below zero; damage never heals
	hit := max(0, baseDMG*out.ReactionMultiplier+additive)
	out.NonCrit = hit * dmgBonus * defMult * resMult
	out.Crit = out.NonCrit * (1 + s[model.CritDMG]/100)
	cr := model.ClampCritRate(s[model.CritRate]) / 100
	out.Average = out.NonCrit*(1-cr) + out.Crit*cr
	return out, nil
}

// CalcDMGBonusMultiplier returns 1 + (element bonus + dmg_bonus + talent bonus)/100,
// floored at 0.
// Physical damage uses physical_dmg_bonus; elemental damage sums the generic
// and the element-specific bonus.
func CalcDMGBonusMultiplier(s model.StatBlock, element model.Element, talent model.TalentKind) float64 {
	var elementBonus float64
	if element == model.Physical {
		elementBonus = s[model.PhysicalDMGBonus]
	} else {
		elementBonus = s[model.ElementalDMGBonus] + s[element.DamageBonusStat()]
	}
	return max(0, 1+(elementBonus+s[model.DMGBonus]+s[talent.DMGBonusStat()])/100)
}

// CalcDefMultiplier returns the enemy DEF multiplier:
//
//	(cl+100) / ((cl+100) + (el+100) × (1 − defReduction/100))
func CalcDefMultiplier(characterLevel, enemyLevel int, defReduction float64) float64 {
	cl := float64(characterLevel) + 100
	el := float64(enemyLevel) + 100
	return cl / (cl + el*(1-defReduction/100))
}

// CalcResMultiplier returns the piecewise resistance multiplier.
// Negative resistance is halved, resistance at or above 75% follows 1/(4r+1).
func CalcResMultiplier(resistance float64) float64 {
	switch {
	case resistance < 0:
		return 1 - resistance/200
	case resistance < 75:
		return 1 - resistance/100
	default:
		return 1 / (4*resistance/100 + 1)
	}
}

// EffectiveResistance subtracts generic and element shred from the enemy RES.
func EffectiveResistance(resistance float64, s model.StatBlock, element model.Element) float64 {
	return resistance - s[model.ResShred] - s[element.ResShredStat()]
}

// EffectiveDefReduction adds def_shred from stats to the enemy debuff,
// capped at 100.
func EffectiveDefReduction(reduction float64, s model.StatBlock) float64 {
	return math.Min(100, reduction+s[model.DEFShred])
}

// CalcAmplifyingMultiplier returns base × (1 + 2.78·EM/(EM+1400) + bonus/100).
// Negative EM counts as 0 and the result is floored at 0.
func CalcAmplifyingMultiplier(base, em, bonus float64) float64 {
	em = max(0, em)
	return max(0, base*(1+2.78*em/(em+1400)+bonus/100))
}

// CalcTransformativeDamage returns level × reaction × (1 + 16·EM/(EM+2000) + bonus/100).
// The result is before enemy RES. Negative EM counts as 0 and the result is floored at 0.
func CalcTransformativeDamage(levelMultiplier, reactionMultiplier, em, bonus float64) float64 {
	em = max(0, em)
	return max(0, levelMultiplier*reactionMultiplier*(1+16*em/(em+2000)+bonus/100))
}

// CalcAdditiveDamage returns level × reaction × (1 + 5·EM/(EM+1200) + bonus/100).
// Negative EM counts as 0 and the result is floored at 0.
func CalcAdditiveDamage(levelMultiplier, reactionMultiplier, em, bonus float64) float64 {
	em = max(0, em)
	return max(0, levelMultiplier*reactionMultiplier*(1+5*em/(em+1200)+bonus/100))
}
