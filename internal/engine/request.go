package engine

import (
	"github.com/udisondev/dmgcalc/internal/game/artifact"
	"github.com/udisondev/dmgcalc/internal/game/resonance"
	"github.com/udisondev/dmgcalc/internal/model"
)

// Build is one character's stat sources and levels.
type Build struct {
	Character string          `yaml:"character" json:"character"`
	BaseStats model.StatBlock `yaml:"base_stats" json:"base_stats"`
	// Equipment holds weapon and artifact main/sub stat blocks.
	Equipment []model.StatBlock `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	// ArtifactSets names the set of each equipped piece; empty means off-set.
	ArtifactSets   []string                 `yaml:"artifact_sets,omitempty" json:"artifact_sets,omitempty"`
	CharacterLevel int                      `yaml:"character_level,omitempty" json:"character_level,omitempty"`
	TalentLevels   map[model.TalentKind]int `yaml:"talent_levels,omitempty" json:"talent_levels,omitempty"`
}

// Enemy is the target profile. Missing per-element resistance falls back to
// the configured default.
type Enemy struct {
	Level        int                       `yaml:"level,omitempty" json:"level,omitempty"`
	Resistance   map[model.Element]float64 `yaml:"resistance,omitempty" json:"resistance,omitempty"`
	DefReduction float64                   `yaml:"def_reduction,omitempty" json:"def_reduction,omitempty"`
}

// Request asks for a full analysis of one team member.
type Request struct {
	Build `yaml:",inline"`

	Team  model.TeamComposition `yaml:"team" json:"team"`
	Enemy Enemy                 `yaml:"enemy" json:"enemy"`
	// Reactions, when set, replaces reaction detection with the named reactions.
	Reactions []string `yaml:"reactions,omitempty" json:"reactions,omitempty"`
}

// TeamRequest analyzes several builds of the same team against one enemy.
type TeamRequest struct {
	Team      model.TeamComposition `yaml:"team" json:"team"`
	Enemy     Enemy                 `yaml:"enemy" json:"enemy"`
	Reactions []string              `yaml:"reactions,omitempty" json:"reactions,omitempty"`
	Builds    []Build               `yaml:"builds" json:"builds"`
}

// Requests splits the team request into per-character requests.
func (t TeamRequest) Requests() []Request {
	out := make([]Request, len(t.Builds))
	for i, b := range t.Builds {
		out[i] = Request{Build: b, Team: t.Team, Enemy: t.Enemy, Reactions: t.Reactions}
	}
	return out
}

// Report is the analysis result for one character.
type Report struct {
	Character     string        `yaml:"character" json:"character"`
	Element       model.Element `yaml:"element" json:"element"`
	TablesVersion string        `yaml:"tables_version" json:"tables_version"`

	Talents     []model.TalentDamage      `yaml:"talents" json:"talents"`
	Candidates  []model.ReactionCandidate `yaml:"candidates,omitempty" json:"candidates,omitempty"`
	Recommended []string                  `yaml:"recommended,omitempty" json:"recommended,omitempty"`

	TeamBuffs       model.StatBlock         `yaml:"team_buffs" json:"team_buffs"`
	AppliedBuffs    []resonance.AppliedBuff `yaml:"applied_buffs,omitempty" json:"applied_buffs,omitempty"`
	ArtifactBonuses []artifact.ActiveBonus  `yaml:"artifact_bonuses,omitempty" json:"artifact_bonuses,omitempty"`
	Synergy         int                     `yaml:"synergy" json:"synergy"`

	BaseStats  model.StatBlock          `yaml:"base_stats" json:"base_stats"`
	FinalStats model.StatBlock          `yaml:"final_stats" json:"final_stats"`
	Quality    model.BuildQualityReport `yaml:"quality" json:"quality"`
}
