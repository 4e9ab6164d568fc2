package model

import (
	"math"
	"slices"
	"strings"
)

// Stat names a single stat contribution. Percent stats use 100.0 == +100%.
type Stat string

const (
	BaseATK    Stat = "base_atk"
	FlatATK    Stat = "flat_atk"
	ATKPercent Stat = "atk_percent"
	BaseHP     Stat = "base_hp"
	FlatHP     Stat = "flat_hp"
	HPPercent  Stat = "hp_percent"
	BaseDEF    Stat = "base_def"
	FlatDEF    Stat = "flat_def"
	DEFPercent Stat = "def_percent"

	CritRate         Stat = "crit_rate"
	CritDMG          Stat = "crit_dmg"
	ElementalMastery Stat = "elemental_mastery"
	EnergyRecharge   Stat = "energy_recharge"
	HealingBonus     Stat = "healing_bonus"
	ShieldStrength   Stat = "shield_strength"
	MovementSpeed    Stat = "movement_speed"

	ElementalDMGBonus Stat = "elemental_dmg_bonus"
	PhysicalDMGBonus  Stat = "physical_dmg_bonus"
	PyroDMGBonus      Stat = "pyro_dmg_bonus"
	HydroDMGBonus     Stat = "hydro_dmg_bonus"
	ElectroDMGBonus   Stat = "electro_dmg_bonus"
	CryoDMGBonus      Stat = "cryo_dmg_bonus"
	AnemoDMGBonus     Stat = "anemo_dmg_bonus"
	GeoDMGBonus       Stat = "geo_dmg_bonus"
	DendroDMGBonus    Stat = "dendro_dmg_bonus"
	DMGBonus          Stat = "dmg_bonus"

	NormalAttackDMGBonus   Stat = "normal_attack_dmg_bonus"
	ElementalSkillDMGBonus Stat = "elemental_skill_dmg_bonus"
	ElementalBurstDMGBonus Stat = "elemental_burst_dmg_bonus"

	AdditiveBaseDMG       Stat = "additive_base_dmg"
	NormalAttackFlatDMG   Stat = "normal_attack_flat_dmg"
	ElementalSkillFlatDMG Stat = "elemental_skill_flat_dmg"
	ElementalBurstFlatDMG Stat = "elemental_burst_flat_dmg"

	ReactionBonus Stat = "reaction_bonus"
	ResShred      Stat = "res_shred"
	DEFShred      Stat = "def_shred"
	AllRES        Stat = "all_res"

	// Derived by stats.Aggregate.
	TotalATK Stat = "total_atk"
	TotalHP  Stat = "total_hp"
	TotalDEF Stat = "total_def"
)

var knownStats = map[Stat]struct{}{}

func init() {
	for _, s := range []Stat{
		BaseATK, FlatATK, ATKPercent, BaseHP, FlatHP, HPPercent, BaseDEF, FlatDEF, DEFPercent,
		CritRate, CritDMG, ElementalMastery, EnergyRecharge, HealingBonus, ShieldStrength, MovementSpeed,
		ElementalDMGBonus, PhysicalDMGBonus, PyroDMGBonus, HydroDMGBonus, ElectroDMGBonus,
		CryoDMGBonus, AnemoDMGBonus, GeoDMGBonus, DendroDMGBonus, DMGBonus,
		NormalAttackDMGBonus, ElementalSkillDMGBonus, ElementalBurstDMGBonus,
		AdditiveBaseDMG, NormalAttackFlatDMG, ElementalSkillFlatDMG, ElementalBurstFlatDMG,
		ReactionBonus, ResShred, DEFShred, AllRES,
		TotalATK, TotalHP, TotalDEF,
	} {
		knownStats[s] = struct{}{}
	}
	for _, e := range Elements {
		if e != Physical {
			knownStats[e.DamageBonusStat()] = struct{}{}
		}
		knownStats[e.ResShredStat()] = struct{}{}
	}
}

// Known reports whether s is a stat the engine understands.
func (s Stat) Known() bool {
	_, ok := knownStats[s]
	return ok
}

// UnmarshalText lower-cases stat keys read from YAML/JSON.
func (s *Stat) UnmarshalText(text []byte) error {
	v := Stat(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Known() {
		return Validationf("unknown stat %q", string(text))
	}
	*s = v
	return nil
}

// StatBlock maps stats to values. A nil block is a valid empty block.
type StatBlock map[Stat]float64

// Get returns the value and whether the stat is present.
func (b StatBlock) Get(s Stat) (float64, bool) {
	v, ok := b[s]
	return v, ok
}

// Value returns the stat or 0 when absent.
func (b StatBlock) Value(s Stat) float64 {
	return b[s]
}

// Clone returns an independent copy.
func (b StatBlock) Clone() StatBlock {
	out := make(StatBlock, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Add sums other into b in place. Only use on blocks the caller owns.
func (b StatBlock) Add(other StatBlock) {
	for k, v := range other {
		b[k] += v
	}
}

// Keys returns the stat names in lexical order.
func (b StatBlock) Keys() []Stat {
	keys := make([]Stat, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// TotalATK returns (base_atk + flat_atk) × (1 + atk_percent/100).
func (b StatBlock) TotalATK() float64 {
	return (b[BaseATK] + b[FlatATK]) * (1 + b[ATKPercent]/100)
}

// TotalHP returns (base_hp + flat_hp) × (1 + hp_percent/100).
func (b StatBlock) TotalHP() float64 {
	return (b[BaseHP] + b[FlatHP]) * (1 + b[HPPercent]/100)
}

// TotalDEF returns (base_def + flat_def) × (1 + def_percent/100).
func (b StatBlock) TotalDEF() float64 {
	return (b[BaseDEF] + b[FlatDEF]) * (1 + b[DEFPercent]/100)
}

// Validate rejects unknown stat names and non-finite values.
func (b StatBlock) Validate() error {
	for _, k := range b.Keys() {
		if !k.Known() {
			return Validationf("unknown stat %q", k)
		}
		v := b[k]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Validationf("stat %s is not finite", k)
		}
	}
	return nil
}

// ClampCritRate limits crit rate to [0,100] for consumption by formulas.
func ClampCritRate(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
