package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/dmgcalc/internal/game/combat"
	"github.com/udisondev/dmgcalc/internal/game/reaction"
	"github.com/udisondev/dmgcalc/internal/game/resonance"
	"github.com/udisondev/dmgcalc/internal/game/stats"
	"github.com/udisondev/dmgcalc/internal/model"
)

// Analyze runs the full pipeline for one character:
// raw stats → aggregate → team buffs → reactions → damage per talent → quality.
func (e *Engine) Analyze(ctx context.Context, req Request) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Team.Validate(); err != nil {
		return nil, err
	}
	member, ok := req.Team.Member(req.Character)
	if !ok {
		return nil, model.Validationf("character %q is not in the team", req.Character)
	}
	char, err := e.tables.Character(req.Character)
	if err != nil {
		return nil, err
	}
	if member.Element != char.Element {
		return nil, model.Validationf("character %q is %s, team lists %s", req.Character, char.Element, member.Element)
	}

	setBlock, setBonuses, err := e.artifacts.Apply(req.ArtifactSets)
	if err != nil {
		return nil, fmt.Errorf("applying artifact sets: %w", err)
	}
	equipment := make([]model.StatBlock, 0, len(req.Equipment)+1)
	equipment = append(equipment, req.Equipment...)
	equipment = append(equipment, setBlock)

	base, err := stats.Aggregate(req.BaseStats, equipment, nil)
	if err != nil {
		return nil, fmt.Errorf("aggregating stats: %w", err)
	}
	_, teamApplied, err := e.buffs.ComputeTeamBuffsDetailed(req.Team)
	if err != nil {
		return nil, fmt.Errorf("computing team buffs: %w", err)
	}
	// a support does not receive its own buffs; synergy still rates the whole team
	teamBuffs, applied := resonance.ForRecipient(teamApplied, req.Character)
	buffed, err := stats.Merge(base, teamBuffs)
	if err != nil {
		return nil, fmt.Errorf("applying team buffs: %w", err)
	}

	report := &Report{
		Character:       member.Name,
		Element:         char.Element,
		TablesVersion:   e.tables.Version,
		TeamBuffs:       teamBuffs,
		AppliedBuffs:    applied,
		ArtifactBonuses: setBonuses,
		Synergy:         resonance.SynergyScore(req.Team, teamApplied),
		BaseStats:       base,
		FinalStats:      buffed,
	}

	pick, err := e.reactionPicker(req, report)
	if err != nil {
		return nil, err
	}

	characterLevel := req.CharacterLevel
	if characterLevel == 0 {
		characterLevel = e.defaults.CharacterLevel
	}
	enemyLevel := req.Enemy.Level
	if enemyLevel == 0 {
		enemyLevel = e.defaults.EnemyLevel
	}

	for _, talent := range model.TalentKinds {
		if !e.tables.HasTalent(req.Character, talent) {
			continue
		}
		info, err := e.tables.Talent(req.Character, talent)
		if err != nil {
			return nil, err
		}
		level, ok := req.TalentLevels[talent]
		if !ok || level == 0 {
			level = e.defaults.TalentLevel
		}

		in := combat.Input{
			Character:      model.NormalizeName(req.Character),
			Talent:         talent,
			TalentLevel:    level,
			CharacterLevel: characterLevel,
			Stats:          base,
			Enemy: combat.Enemy{
				Level:        enemyLevel,
				Resistance:   e.resistance(req.Enemy, info.Element),
				DefReduction: req.Enemy.DefReduction,
			},
		}

		td := model.TalentDamage{Talent: talent, Element: info.Element}
		if td.Base, err = e.damage.ComputeDamage(ctx, in); err != nil {
			return nil, fmt.Errorf("computing %s base damage: %w", talent, err)
		}
		in.Stats = buffed
		if td.Buffed, err = e.damage.ComputeDamage(ctx, in); err != nil {
			return nil, fmt.Errorf("computing %s buffed damage: %w", talent, err)
		}
		if cand, ok := pick(info.Element); ok {
			in.Reaction = &cand
			withReaction, err := e.damage.ComputeDamage(ctx, in)
			if err != nil {
				return nil, fmt.Errorf("computing %s %s damage: %w", talent, cand.Rule.Name, err)
			}
			td.Reaction = &withReaction
		}
		report.Talents = append(report.Talents, td)
	}

	if report.Quality, err = e.quality.Evaluate(buffed); err != nil {
		return nil, fmt.Errorf("evaluating build: %w", err)
	}

	slog.Debug("analysis complete",
		"character", report.Character,
		"talents", len(report.Talents),
		"reactions", len(report.Candidates),
		"tier", report.Quality.Tier)
	return report, nil
}

// AnalyzeTeam analyzes every request concurrently, bounded by the configured
// worker count. Reports keep request order; the first error cancels the rest.
func (e *Engine) AnalyzeTeam(ctx context.Context, reqs []Request) ([]*Report, error) {
	reports := make([]*Report, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, req := range reqs {
		g.Go(func() error {
			r, err := e.Analyze(gctx, req)
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", req.Character, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// reactionPicker fills the report's reaction section and returns a selector
// giving the reaction to apply for a damage element.
func (e *Engine) reactionPicker(req Request, report *Report) (func(model.Element) (model.ReactionCandidate, bool), error) {
	if len(req.Reactions) == 0 {
		ranked, err := e.detector.Detect(req.Team)
		if err != nil {
			return nil, fmt.Errorf("detecting reactions: %w", err)
		}
		report.Candidates = ranked
		report.Recommended = reaction.Recommended(ranked, reaction.DefaultRecommended)
		return func(el model.Element) (model.ReactionCandidate, bool) {
			return reaction.BestFor(ranked, req.Character, el)
		}, nil
	}

	// Explicit list: keep caller order, resolve every name up front.
	var explicit []model.ReactionCandidate
	for _, name := range req.Reactions {
		rules := e.tables.ReactionsNamed(name)
		if len(rules) == 0 {
			return nil, model.NewNotFound("reaction", name)
		}
		report.Recommended = append(report.Recommended, rules[0].Name)
		for _, rule := range rules {
			explicit = append(explicit, model.ReactionCandidate{
				AuraCharacter:    auraHolder(req.Team, req.Character, rule.Aura),
				TriggerCharacter: report.Character,
				Rule:             rule,
			})
		}
	}
	return func(el model.Element) (model.ReactionCandidate, bool) {
		for _, c := range explicit {
			if c.Rule.Trigger == el {
				return c, true
			}
		}
		return model.ReactionCandidate{}, false
	}, nil
}

// auraHolder returns the first teammate other than character with element,
// or an empty string when the aura comes from outside the team.
func auraHolder(team model.TeamComposition, character string, element model.Element) string {
	for _, m := range team.Members {
		if m.Element == element && model.NormalizeName(m.Name) != model.NormalizeName(character) {
			return m.Name
		}
	}
	return ""
}

func (e *Engine) resistance(enemy Enemy, element model.Element) float64 {
	if r, ok := enemy.Resistance[element]; ok {
		return r
	}
	return e.defaults.EnemyResistance
}
