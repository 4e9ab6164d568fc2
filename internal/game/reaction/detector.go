// Package reaction enumerates and ranks elemental reactions a team can trigger.
package reaction

import (
	"cmp"
	"slices"

	"github.com/udisondev/dmgcalc/internal/model"
)

// Viability score weights.
const (
	ScoreMainDPSTrigger = 50
	ScoreMainDPSAura    = 30
	ScoreSupportRole    = 10 // per aura/trigger slot not filled by the main DPS
	ScoreAmplifying     = 30
	ScoreTransformative = 10
)

// DefaultRecommended is how many distinct reactions callers surface.
const DefaultRecommended = 3

// RuleTable resolves directed (aura, trigger) pairs.
type RuleTable interface {
	Reaction(aura, trigger model.Element) (model.ReactionRule, bool)
}

// Detector scores reaction candidates for a team. Safe for concurrent use.
type Detector struct {
	rules    RuleTable
	reliable map[string]int
}

// NewDetector creates a Detector. reliable maps normalized character names to
// their applicator bonus; it is read, never written.
func NewDetector(rules RuleTable, reliable map[string]int) *Detector {
	return &Detector{rules: rules, reliable: reliable}
}

// Detect returns every viable reaction of the team ranked best first.
// A single-member or mono-element team yields an empty slice.
func (d *Detector) Detect(team model.TeamComposition) ([]model.ReactionCandidate, error) {
	if err := team.Validate(); err != nil {
		return nil, err
	}

	type key struct{ name, aura, trigger string }
	seen := make(map[key]struct{})
	var out []model.ReactionCandidate

	members := team.Members
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			// Either member may apply first.
			for _, pair := range [2][2]model.Member{{members[i], members[j]}, {members[j], members[i]}} {
				aura, trigger := pair[0], pair[1]
				rule, ok := d.rules.Reaction(aura.Element, trigger.Element)
				if !ok || rule.Category == model.NoCategory {
					continue
				}
				k := key{rule.Name, model.NormalizeName(aura.Name), model.NormalizeName(trigger.Name)}
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				out = append(out, model.ReactionCandidate{
					AuraCharacter:    aura.Name,
					TriggerCharacter: trigger.Name,
					Rule:             rule,
					ViabilityScore:   d.score(team, aura.Name, trigger.Name, rule),
				})
			}
		}
	}

	Sort(out)
	return out, nil
}

func (d *Detector) score(team model.TeamComposition, aura, trigger string, rule model.ReactionRule) int {
	score := 0
	switch {
	case team.IsMainDPS(trigger):
		score += ScoreMainDPSTrigger
	case team.IsMainDPS(aura):
		score += ScoreMainDPSAura
	default:
		score += 2 * ScoreSupportRole
	}

	switch rule.Category {
	case model.Amplifying:
		score += ScoreAmplifying
	case model.Transformative:
		score += ScoreTransformative
	}

	score += d.reliable[model.NormalizeName(trigger)]
	return score
}

// Sort orders candidates by score, category priority, reaction name, then
// character names so the ranking is fully deterministic.
func Sort(cands []model.ReactionCandidate) {
	slices.SortStableFunc(cands, func(a, b model.ReactionCandidate) int {
		if c := cmp.Compare(b.ViabilityScore, a.ViabilityScore); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Rule.Category.Priority(), a.Rule.Category.Priority()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Rule.Name, b.Rule.Name); c != 0 {
			return c
		}
		if c := cmp.Compare(model.NormalizeName(a.AuraCharacter), model.NormalizeName(b.AuraCharacter)); c != 0 {
			return c
		}
		return cmp.Compare(model.NormalizeName(a.TriggerCharacter), model.NormalizeName(b.TriggerCharacter))
	})
}

// Recommended returns up to n distinct reaction names in ranking order.
func Recommended(ranked []model.ReactionCandidate, n int) []string {
	var names []string
	for _, c := range ranked {
		if len(names) == n {
			break
		}
		if !slices.Contains(names, c.Rule.Name) {
			names = append(names, c.Rule.Name)
		}
	}
	return names
}

// BestFor returns the highest ranked candidate triggered by character with
// the given element, if any.
func BestFor(ranked []model.ReactionCandidate, character string, element model.Element) (model.ReactionCandidate, bool) {
	name := model.NormalizeName(character)
	for _, c := range ranked {
		if model.NormalizeName(c.TriggerCharacter) == name && c.Rule.Trigger == element {
			return c, true
		}
	}
	return model.ReactionCandidate{}, false
}
