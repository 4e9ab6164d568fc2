package combat

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dmgcalc/internal/model"
)

const eps = 1e-6

func TestComputeDamage_Golden(t *testing.T) {
	calc := newStubCalculator()

	got, err := calc.ComputeDamage(goldenInput())
	require.NoError(t, err)

	assert.InDelta(t, 2562.3, got.NonCrit, eps)
	assert.InDelta(t, 8611.8903, got.Crit, eps)
	assert.InDelta(t, 4982.13612, got.Average, eps)
	assert.Equal(t, 1.0, got.ReactionMultiplier)
	assert.Empty(t, got.Reaction)
	assert.Zero(t, got.ReactionDamage)
}

func TestComputeDamage_DoesNotMutateStats(t *testing.T) {
	calc := newStubCalculator()
	in := goldenInput()
	before := in.Stats.Clone()

	_, err := calc.ComputeDamage(in)
	require.NoError(t, err)
	assert.Equal(t, before, in.Stats)
}

func TestComputeDamage_DMGBonus(t *testing.T) {
	calc := newStubCalculator()

	t.Run("physical normal attack ignores elemental bonuses", func(t *testing.T) {
		in := goldenInput()
		in.Talent = model.NormalAttack
		in.Stats[model.PhysicalDMGBonus] = 50
		in.Stats[model.PyroDMGBonus] = 46.6
		in.Stats[model.ElementalDMGBonus] = 10

		got, err := calc.ComputeDamage(in)
		require.NoError(t, err)
		assert.InDelta(t, 1921.725, got.NonCrit, eps)
	})

	t.Run("elemental skill sums generic, element and talent bonus", func(t *testing.T) {
		in := goldenInput()
		in.Stats[model.ElementalDMGBonus] = 10
		in.Stats[model.PyroDMGBonus] = 46.6
		in.Stats[model.DMGBonus] = 5
		in.Stats[model.ElementalSkillDMGBonus] = 20
		in.Stats[model.PhysicalDMGBonus] = 100
		in.Stats[model.HydroDMGBonus] = 100

		got, err := calc.ComputeDamage(in)
		require.NoError(t, err)
		assert.InDelta(t, 4653.1368, got.NonCrit, eps)
	})
}

func TestComputeDamage_Scaling(t *testing.T) {
	calc := newStubCalculator()

	in := Input{
		Character:      "shield",
		Talent:         model.ElementalBurst,
		TalentLevel:    10,
		CharacterLevel: 90,
		Stats: model.StatBlock{
			model.BaseHP:    30000,
			model.HPPercent: 50,
			model.CritRate:  0,
			model.CritDMG:   50,
		},
		Enemy: Enemy{Level: 90},
	}

	got, err := calc.ComputeDamage(in)
	require.NoError(t, err)
	// 45000 HP × 10% × DEF 0.5
	assert.InDelta(t, 2250, got.NonCrit, eps)
	assert.InDelta(t, got.NonCrit, got.Average, eps, "0% crit rate averages to non-crit")
}

func TestComputeDamage_AdditiveBaseDMG(t *testing.T) {
	calc := newStubCalculator()
	in := goldenInput()
	in.Stats[model.AdditiveBaseDMG] = 500
	in.Stats[model.ElementalSkillFlatDMG] = 300
	in.Stats[model.NormalAttackFlatDMG] = 10000

	got, err := calc.ComputeDamage(in)
	require.NoError(t, err)
	assert.InDelta(t, (5694+800)*0.45, got.NonCrit, eps)
}

func TestComputeDamage_Reactions(t *testing.T) {
	calc := newStubCalculator()

	t.Run("amplifying without EM", func(t *testing.T) {
		in := withReaction(goldenInput(), model.ReactionRule{
			Aura: model.Hydro, Trigger: model.Pyro, Name: "vaporize",
			Category: model.Amplifying, BaseMultiplier: 1.5, RequiresEM: true,
		})
		got, err := calc.ComputeDamage(in)
		require.NoError(t, err)
		assert.Equal(t, "vaporize", got.Reaction)
		assert.Equal(t, model.Amplifying, got.ReactionCategory)
		assert.InDelta(t, 1.5, got.ReactionMultiplier, eps)
		assert.InDelta(t, 2562.3*1.5, got.NonCrit, eps)
	})

	t.Run("amplifying with EM", func(t *testing.T) {
		in := withReaction(goldenInput(), model.ReactionRule{
			Aura: model.Hydro, Trigger: model.Pyro, Name: "vaporize",
			Category: model.Amplifying, BaseMultiplier: 1.5,
		})
		in.Stats[model.ElementalMastery] = 100
		got, err := calc.ComputeDamage(in)
		require.NoError(t, err)
		assert.InDelta(t, 1.778, got.ReactionMultiplier, eps)
		assert.InDelta(t, 4555.7694, got.NonCrit, eps)
	})

	t.Run("transformative is reported separately", func(t *testing.T) {
		in := withReaction(goldenInput(), model.ReactionRule{
			Aura: model.Electro, Trigger: model.Pyro, Name: "overloaded",
			Category: model.Transformative, FlatMultiplier: 2.0,
		})
		got, err := calc.ComputeDamage(in)
		require.NoError(t, err)
		assert.InDelta(t, 2562.3, got.NonCrit, eps, "hit itself is not amplified")
		assert.Equal(t, 1.0, got.ReactionMultiplier)
		assert.InDelta(t, 1446.85*2*0.9, got.ReactionDamage, eps)
	})

	t.Run("additive joins the flat stage", func(t *testing.T) {
		in := withReaction(Input{
			Character:      "sprout",
			Talent:         model.ElementalSkill,
			TalentLevel:    10,
			CharacterLevel: 90,
			Stats: model.StatBlock{
				model.ElementalMastery: 200,
				model.CritRate:         50,
				model.CritDMG:          100,
			},
			Enemy: Enemy{Level: 90, Resistance: 10},
		}, model.ReactionRule{
			Aura: model.Electro, Trigger: model.Dendro, Name: "spread",
			Category: model.Additive, FlatMultiplier: 1.25,
		})
		got, err := calc.ComputeDamage(in)
		require.NoError(t, err)
		assert.InDelta(t, 1485.1767857142859, got.NonCrit, eps)
		assert.InDelta(t, got.NonCrit*2, got.Crit, eps)
	})

	t.Run("trigger element must match damage element", func(t *testing.T) {
		in := withReaction(goldenInput(), model.ReactionRule{
			Aura: model.Pyro, Trigger: model.Hydro, Name: "vaporize",
			Category: model.Amplifying, BaseMultiplier: 2.0,
		})
		_, err := calc.ComputeDamage(in)
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("missing level multiplier", func(t *testing.T) {
		in := withReaction(goldenInput(), model.ReactionRule{
			Aura: model.Electro, Trigger: model.Pyro, Name: "overloaded",
			Category: model.Transformative, FlatMultiplier: 2.0,
		})
		in.CharacterLevel = 65
		_, err := calc.ComputeDamage(in)
		require.ErrorIs(t, err, model.ErrNotFound)

		var nf *model.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "65", nf.Key)
	})
}

func TestComputeDamage_Shred(t *testing.T) {
	calc := newStubCalculator()

	in := goldenInput()
	in.Stats[model.ResShred] = 15
	in.Stats[model.Pyro.ResShredStat()] = 5
	in.Stats[model.Hydro.ResShredStat()] = 40
	got, err := calc.ComputeDamage(in)
	require.NoError(t, err)
	// RES 10 → -10 → 1.05
	assert.InDelta(t, 5694*0.5*1.05, got.NonCrit, eps)

	in = goldenInput()
	in.Enemy.DefReduction = 80
	in.Stats[model.DEFShred] = 30
	got, err = calc.ComputeDamage(in)
	require.NoError(t, err)
	assert.InDelta(t, 5694*0.9, got.NonCrit, eps, "def reduction capped at 100 ignores DEF")
}

func TestComputeDamage_Errors(t *testing.T) {
	calc := newStubCalculator()

	tests := []struct {
		name   string
		mutate func(in *Input)
		want   error
	}{
		{"resistance above 100", func(in *Input) { in.Enemy.Resistance = 101 }, model.ErrValidation},
		{"resistance below -100", func(in *Input) { in.Enemy.Resistance = -100.5 }, model.ErrValidation},
		{"enemy level zero", func(in *Input) { in.Enemy.Level = 0 }, model.ErrValidation},
		{"character level zero", func(in *Input) { in.CharacterLevel = 0 }, model.ErrValidation},
		{"talent level zero", func(in *Input) { in.TalentLevel = 0 }, model.ErrValidation},
		{"negative def reduction", func(in *Input) { in.Enemy.DefReduction = -1 }, model.ErrValidation},
		{"def reduction above 100", func(in *Input) { in.Enemy.DefReduction = 120 }, model.ErrValidation},
		{"missing crit rate", func(in *Input) { delete(in.Stats, model.CritRate) }, model.ErrValidation},
		{"missing crit dmg", func(in *Input) { delete(in.Stats, model.CritDMG) }, model.ErrValidation},
		{"unknown stat", func(in *Input) { in.Stats["luck"] = 1 }, model.ErrValidation},
		{"negative crit dmg", func(in *Input) { in.Stats[model.CritDMG] = -10 }, model.ErrValidation},
		{"negative elemental mastery", func(in *Input) { in.Stats[model.ElementalMastery] = -1 }, model.ErrValidation},
		{"unknown character", func(in *Input) { in.Character = "nobody" }, model.ErrNotFound},
		{"unknown talent level", func(in *Input) { in.TalentLevel = 14 }, model.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := goldenInput()
			tt.mutate(&in)
			_, err := calc.ComputeDamage(in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestComputeDamage_Boundaries(t *testing.T) {
	calc := newStubCalculator()

	for _, res := range []float64{-100, 100} {
		in := goldenInput()
		in.Enemy.Resistance = res
		_, err := calc.ComputeDamage(in)
		assert.NoError(t, err, "resistance %v is inclusive", res)
	}
}

func TestComputeDamage_CritProperties(t *testing.T) {
	calc := newStubCalculator()
	r := rand.New(rand.NewPCG(7, 42))

	for i := range 500 {
		in := goldenInput()
		in.Stats[model.BaseATK] = r.Float64() * 5000
		in.Stats[model.ATKPercent] = r.Float64() * 150
		in.Stats[model.CritRate] = r.Float64()*160 - 30
		in.Stats[model.CritDMG] = r.Float64() * 400
		in.Stats[model.ElementalMastery] = r.Float64() * 1000
		in.Enemy.Level = 1 + r.IntN(100)
		in.Enemy.Resistance = r.Float64()*200 - 100
		in.Enemy.DefReduction = r.Float64() * 100

		got, err := calc.ComputeDamage(in)
		require.NoError(t, err, "case %d", i)

		cr := model.ClampCritRate(in.Stats[model.CritRate]) / 100
		assert.GreaterOrEqual(t, got.NonCrit, 0.0)
		assert.GreaterOrEqual(t, got.Crit, got.NonCrit)
		assert.InDelta(t, got.NonCrit*(1-cr)+got.Crit*cr, got.Average, 1e-6*max(1, got.Crit))
	}
}

func TestComputeDamage_NegativeBuffs(t *testing.T) {
	calc := newStubCalculator()

	// 1000 ATK, 50/100 crit: без дебаффов nonCrit был бы положительным
	base := func() Input {
		in := goldenInput()
		in.Stats[model.BaseATK] = 1000
		in.Stats[model.CritRate] = 50
		in.Stats[model.CritDMG] = 100
		return in
	}
	vaporize := model.ReactionRule{
		Aura: model.Hydro, Trigger: model.Pyro, Name: "vaporize",
		Category: model.Amplifying, BaseMultiplier: 1.5,
	}
	overloaded := model.ReactionRule{
		Aura: model.Electro, Trigger: model.Pyro, Name: "overloaded",
		Category: model.Transformative, FlatMultiplier: 2.0,
	}

	tests := []struct {
		name string
		in   func() Input
	}{
		{"dmg bonus below -100", func() Input {
			in := base()
			in.Stats[model.DMGBonus] = -250
			return in
		}},
		{"atk percent below -100", func() Input {
			in := base()
			in.Stats[model.ATKPercent] = -150
			return in
		}},
		{"flat damage outweighs the hit", func() Input {
			in := base()
			in.Stats[model.AdditiveBaseDMG] = -1e6
			return in
		}},
		{"amplifying reaction bonus below -100", func() Input {
			in := withReaction(base(), vaporize)
			in.Stats[model.ReactionBonus] = -500
			return in
		}},
		{"transformative reaction bonus below -100", func() Input {
			in := withReaction(base(), overloaded)
			in.Stats[model.ReactionBonus] = -500
			return in
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ComputeDamage(tt.in())
			require.NoError(t, err)
			for _, v := range []float64{got.NonCrit, got.Crit, got.Average, got.ReactionDamage} {
				assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "value %v must be finite", v)
				assert.GreaterOrEqual(t, v, 0.0)
			}
			assert.GreaterOrEqual(t, got.Crit, got.NonCrit)
		})
	}
}

func TestComputeDamage_NegativeMasteryRejected(t *testing.T) {
	calc := newStubCalculator()

	// полюса кривых EM: em+1400, em+2000, em+1200
	for _, em := range []float64{-1400, -2000, -1200, -0.5} {
		in := withReaction(goldenInput(), model.ReactionRule{
			Aura: model.Hydro, Trigger: model.Pyro, Name: "vaporize",
			Category: model.Amplifying, BaseMultiplier: 1.5,
		})
		in.Stats[model.ElementalMastery] = em
		_, err := calc.ComputeDamage(in)
		assert.ErrorIs(t, err, model.ErrValidation, "em %v", em)
	}
}

func TestCalcReactionCurves_NegativeMastery(t *testing.T) {
	for _, em := range []float64{-1400, -2000, -1200} {
		if got := CalcAmplifyingMultiplier(1.5, em, 0); got != 1.5 {
			t.Errorf("CalcAmplifyingMultiplier(1.5, %v, 0) = %v, want 1.5", em, got)
		}
		if got := CalcTransformativeDamage(100, 2, em, 0); got != 200 {
			t.Errorf("CalcTransformativeDamage(100, 2, %v, 0) = %v, want 200", em, got)
		}
		if got := CalcAdditiveDamage(100, 1.25, em, 0); got != 125 {
			t.Errorf("CalcAdditiveDamage(100, 1.25, %v, 0) = %v, want 125", em, got)
		}
	}
	assert.Zero(t, CalcAmplifyingMultiplier(1.5, 0, -300))
	assert.Zero(t, CalcTransformativeDamage(100, 2, 0, -300))
	assert.Zero(t, CalcAdditiveDamage(100, 1.25, 0, -300))
}

func TestCalcResMultiplier(t *testing.T) {
	tests := []struct {
		res  float64
		want float64
	}{
		{-100, 1.5},
		{-20, 1.1},
		{0, 1},
		{10, 0.9},
		{50, 0.5},
		{75, 0.25},
		{100, 0.2},
	}
	for _, tt := range tests {
		if got := CalcResMultiplier(tt.res); !closeTo(got, tt.want) {
			t.Errorf("CalcResMultiplier(%v) = %v, want %v", tt.res, got, tt.want)
		}
	}
}

func TestCalcResMultiplier_Continuity(t *testing.T) {
	const h = 1e-9
	assert.InDelta(t, CalcResMultiplier(0), CalcResMultiplier(-h), 1e-6)
	assert.InDelta(t, CalcResMultiplier(75), CalcResMultiplier(75-h), 1e-6)

	prev := CalcResMultiplier(0)
	for r := 0.5; r < 75; r += 0.5 {
		cur := CalcResMultiplier(r)
		if cur >= prev {
			t.Fatalf("CalcResMultiplier not strictly decreasing at %v: %v >= %v", r, cur, prev)
		}
		prev = cur
	}
}

func TestCalcDefMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		cl, el    int
		reduction float64
		want      float64
	}{
		{"equal levels", 90, 90, 0, 0.5},
		{"no reduction closed form", 80, 100, 0, 180.0 / (180 + 200)},
		{"half reduction", 90, 90, 50, 190.0 / (190 + 95)},
		{"full reduction", 90, 90, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalcDefMultiplier(tt.cl, tt.el, tt.reduction), eps)
		})
	}
}

func TestCalcReactionScaling(t *testing.T) {
	assert.Equal(t, 2.0, CalcAmplifyingMultiplier(2.0, 0, 0))
	assert.InDelta(t, 2.0*1.15, CalcAmplifyingMultiplier(2.0, 0, 15), eps)
	assert.InDelta(t, 1446.85*0.6, CalcTransformativeDamage(1446.85, 0.6, 0, 0), eps)
	assert.InDelta(t, 1446.85*0.6*(1+16*1000.0/3000), CalcTransformativeDamage(1446.85, 0.6, 1000, 0), eps)
	assert.InDelta(t, 100*1.15*(1+5*600.0/1800), CalcAdditiveDamage(100, 1.15, 600, 0), eps)

	// EM gains are monotonic and saturating
	low := CalcAmplifyingMultiplier(1.5, 100, 0)
	high := CalcAmplifyingMultiplier(1.5, 1000, 0)
	assert.Greater(t, high, low)
	assert.Less(t, CalcAmplifyingMultiplier(1.5, 1e9, 0), 1.5*3.78+eps)
}

func closeTo(a, b float64) bool {
	d := a - b
	return d < eps && d > -eps
}
