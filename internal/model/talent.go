package model

import "strings"

// TalentKind identifies a character ability.
type TalentKind string

const (
	NormalAttack   TalentKind = "normal_attack"
	ElementalSkill TalentKind = "elemental_skill"
	ElementalBurst TalentKind = "elemental_burst"
)

// TalentKinds lists talents in report order.
var TalentKinds = []TalentKind{NormalAttack, ElementalSkill, ElementalBurst}

// ParseTalentKind converts a case-insensitive name into a TalentKind.
func ParseTalentKind(s string) (TalentKind, error) {
	t := TalentKind(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case NormalAttack, ElementalSkill, ElementalBurst:
		return t, nil
	}
	return "", Validationf("unknown talent %q", s)
}

// DMGBonusStat returns the talent-specific DMG% stat.
func (t TalentKind) DMGBonusStat() Stat {
	return Stat(string(t) + "_dmg_bonus")
}

// FlatDMGStat returns the talent-specific additive base DMG stat.
func (t TalentKind) FlatDMGStat() Stat {
	return Stat(string(t) + "_flat_dmg")
}

// ScalingAttribute names the stat a talent multiplier is applied to.
type ScalingAttribute string

const (
	ScaleATK ScalingAttribute = "atk"
	ScaleHP  ScalingAttribute = "hp"
	ScaleDEF ScalingAttribute = "def"
	ScaleEM  ScalingAttribute = "em"
)

// Valid reports whether a is a supported scaling attribute.
func (a ScalingAttribute) Valid() bool {
	switch a {
	case ScaleATK, ScaleHP, ScaleDEF, ScaleEM:
		return true
	}
	return false
}

// ValueFrom reads the scaling value from a stat block.
func (a ScalingAttribute) ValueFrom(b StatBlock) float64 {
	switch a {
	case ScaleHP:
		return b.TotalHP()
	case ScaleDEF:
		return b.TotalDEF()
	case ScaleEM:
		return b[ElementalMastery]
	default:
		return b.TotalATK()
	}
}

// TalentInfo describes how a talent deals damage.
type TalentInfo struct {
	Scaling ScalingAttribute
	Element Element
}
