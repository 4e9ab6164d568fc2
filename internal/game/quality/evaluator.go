// Package quality rates the crit investment of a finished stat block.
package quality

import (
	"fmt"
	"math"

	"github.com/udisondev/dmgcalc/internal/data"
	"github.com/udisondev/dmgcalc/internal/model"
)

// Defaults used when the quality table leaves ratio settings unset.
const (
	DefaultOptimalRatio   = 2.0
	DefaultRatioTolerance = 0.2
)

// DefaultTiers mirrors the shipped quality table.
var DefaultTiers = []data.Tier{
	{Name: "Poor", MinCritValue: 0},
	{Name: "Good", MinCritValue: 100},
	{Name: "Very Good", MinCritValue: 150},
	{Name: "Excellent", MinCritValue: 200},
}

// Evaluator scores stat blocks against crit value tiers.
type Evaluator struct {
	tiers     []data.Tier
	ratio     float64
	tolerance float64
}

// NewEvaluator creates an Evaluator. Tiers must be sorted by MinCritValue
// ascending; an empty list falls back to DefaultTiers.
func NewEvaluator(cfg data.QualityConfig) *Evaluator {
	e := &Evaluator{
		tiers:     cfg.Tiers,
		ratio:     cfg.OptimalRatio,
		tolerance: cfg.RatioTolerance,
	}
	if len(e.tiers) == 0 {
		e.tiers = DefaultTiers
	}
	if e.ratio <= 0 {
		e.ratio, e.tolerance = DefaultOptimalRatio, DefaultRatioTolerance
	}
	if e.tolerance < 0 {
		e.tolerance = DefaultRatioTolerance
	}
	return e
}

// CritValue returns clamp(crit_rate, 0, 100) × 2 + crit_dmg.
func CritValue(critRate, critDMG float64) float64 {
	return model.ClampCritRate(critRate)*2 + critDMG
}

// Evaluate builds the quality report for a stat block.
func (e *Evaluator) Evaluate(stats model.StatBlock) (model.BuildQualityReport, error) {
	cr, ok := stats.Get(model.CritRate)
	if !ok {
		return model.BuildQualityReport{}, model.Validationf("missing stat %s", model.CritRate)
	}
	cd, ok := stats.Get(model.CritDMG)
	if !ok {
		return model.BuildQualityReport{}, model.Validationf("missing stat %s", model.CritDMG)
	}
	if math.IsNaN(cr) || math.IsNaN(cd) || math.IsInf(cr, 0) || math.IsInf(cd, 0) {
		return model.BuildQualityReport{}, model.Validationf("crit stats must be finite")
	}

	report := model.BuildQualityReport{
		CritValue: CritValue(cr, cd),
	}
	report.Tier = e.Tier(report.CritValue)

	switch {
	case cr <= 0:
		report.Notes = append(report.Notes, "crit rate is not positive, hits never crit")
	case cr > 100:
		report.Notes = append(report.Notes,
			fmt.Sprintf("crit rate %.1f%% is overcapped, %.1f%% is wasted", cr, cr-100))
	}

	if cr > 0 {
		report.CritRatio = cd / model.ClampCritRate(cr)
		if diff := report.CritRatio - e.ratio; math.Abs(diff) > e.tolerance {
			favor := "crit dmg"
			if diff > 0 {
				favor = "crit rate"
			}
			report.Notes = append(report.Notes,
				fmt.Sprintf("crit ratio 1:%.2f is off the optimal 1:%.2f, favor %s", report.CritRatio, e.ratio, favor))
		}
	}
	return report, nil
}

// Tier returns the highest tier whose threshold critValue reaches.
// Values below every threshold fall into the lowest tier.
func (e *Evaluator) Tier(critValue float64) string {
	name := e.tiers[0].Name
	for _, t := range e.tiers {
		if critValue < t.MinCritValue {
			break
		}
		name = t.Name
	}
	return name
}
