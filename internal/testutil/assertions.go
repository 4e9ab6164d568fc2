package testutil

import (
	"math"
	"testing"

	"github.com/udisondev/dmgcalc/internal/model"
)

// AssertBreakdownConsistent проверяет инварианты результата формулы:
// crit >= nonCrit >= 0 и average = nonCrit×(1−cr) + crit×cr.
func AssertBreakdownConsistent(t testing.TB, b model.DamageBreakdown, critRate float64) {
	t.Helper()

	if b.NonCrit < 0 {
		t.Errorf("non-crit damage %v is negative", b.NonCrit)
	}
	if b.Crit < b.NonCrit {
		t.Errorf("crit damage %v < non-crit %v", b.Crit, b.NonCrit)
	}
	cr := model.ClampCritRate(critRate) / 100
	want := b.NonCrit*(1-cr) + b.Crit*cr
	if math.Abs(b.Average-want) > 1e-6*math.Max(1, b.Crit) {
		t.Errorf("average = %v, want %v", b.Average, want)
	}
}

// AssertBreakdownInDelta сравнивает два результата с допуском.
func AssertBreakdownInDelta(t testing.TB, want, got model.DamageBreakdown, delta float64) {
	t.Helper()

	check := func(name string, w, g float64) {
		if math.Abs(w-g) > delta {
			t.Errorf("%s = %v, want %v (±%v)", name, g, w, delta)
		}
	}
	check("non_crit", want.NonCrit, got.NonCrit)
	check("crit", want.Crit, got.Crit)
	check("average", want.Average, got.Average)
	check("reaction_damage", want.ReactionDamage, got.ReactionDamage)
	if want.Reaction != got.Reaction {
		t.Errorf("reaction = %q, want %q", got.Reaction, want.Reaction)
	}
}
