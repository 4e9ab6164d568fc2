package data

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/dmgcalc/internal/model"
)

// Tables holds every static lookup the engine consumes.
// Built once by LoadTables/DefaultTables and shared read-only afterwards.
type Tables struct {
	Version             string                      `yaml:"version"`
	Characters          map[string]CharacterData    `yaml:"characters"`
	Reactions           []model.ReactionRule        `yaml:"reactions"`
	ReactionLevels      map[int]float64             `yaml:"reaction_levels"`
	Resonances          map[model.Element]Resonance `yaml:"resonances"`
	Dispersion          Resonance                   `yaml:"dispersion"`
	SupportBuffs        map[string][]SupportBuff    `yaml:"support_buffs"`
	ReliableApplicators map[string]int              `yaml:"reliable_applicators"`
	Quality             QualityConfig               `yaml:"quality"`
	ArtifactSets        map[string][]SetBonus       `yaml:"artifact_sets"`

	// reactionIndex[aura][trigger], built by prepare.
	reactionIndex map[model.Element]map[model.Element]model.ReactionRule
	// digest is the xxhash of the source YAML, or of the re-encoded set
	// for tables assembled in code.
	digest uint64
}

// CharacterData is the per-character record. Keys are normalized names.
type CharacterData struct {
	Element model.Element                   `yaml:"element"`
	Talents map[model.TalentKind]TalentData `yaml:"talents"`
}

// TalentData is a talent's scaling attribute, optional element override and
// multiplier per talent level.
type TalentData struct {
	Scaling     model.ScalingAttribute `yaml:"scaling"`
	Element     model.Element          `yaml:"element,omitempty"`
	Multipliers map[int]float64        `yaml:"multipliers"`
}

// Resonance is a team-wide buff unlocked by element count.
type Resonance struct {
	Name      string          `yaml:"name"`
	Threshold int             `yaml:"threshold"`
	Buffs     model.StatBlock `yaml:"buffs"`
}

// SupportBuff is a buff a character grants to the rest of the team.
type SupportBuff struct {
	Stat   model.Stat `yaml:"stat"`
	Value  float64    `yaml:"value"`
	Uptime float64    `yaml:"uptime"`
}

// Tier maps a minimum crit value to a quality label.
type Tier struct {
	Name         string  `yaml:"name"`
	MinCritValue float64 `yaml:"min_crit_value"`
}

// QualityConfig holds build quality thresholds.
type QualityConfig struct {
	Tiers          []Tier  `yaml:"tiers"`
	OptimalRatio   float64 `yaml:"optimal_ratio"`
	RatioTolerance float64 `yaml:"ratio_tolerance"`
}

// SetBonus is an artifact set effect unlocked at Pieces equipped.
type SetBonus struct {
	Pieces      int             `yaml:"pieces"`
	Description string          `yaml:"description"`
	Stats       model.StatBlock `yaml:"stats"`
}

// Character returns the record for name.
func (t *Tables) Character(name string) (CharacterData, error) {
	c, ok := t.Characters[model.NormalizeName(name)]
	if !ok {
		return CharacterData{}, model.NewNotFound("character", name)
	}
	return c, nil
}

// HasTalent reports whether the character defines talent at all.
func (t *Tables) HasTalent(character string, talent model.TalentKind) bool {
	c, ok := t.Characters[model.NormalizeName(character)]
	if !ok {
		return false
	}
	_, ok = c.Talents[talent]
	return ok
}

// Talent returns scaling attribute and damage element of a talent.
// Normal attacks deal physical damage unless the table overrides the element.
func (t *Tables) Talent(character string, talent model.TalentKind) (model.TalentInfo, error) {
	c, err := t.Character(character)
	if err != nil {
		return model.TalentInfo{}, err
	}
	td, ok := c.Talents[talent]
	if !ok {
		return model.TalentInfo{}, model.NewNotFound("talent", character+"/"+string(talent))
	}
	info := model.TalentInfo{Scaling: td.Scaling, Element: td.Element}
	if info.Element == "" {
		info.Element = c.Element
		if talent == model.NormalAttack {
			info.Element = model.Physical
		}
	}
	return info, nil
}

// TalentMultiplier returns the scaling percentage for (character, talent, level).
func (t *Tables) TalentMultiplier(character string, talent model.TalentKind, level int) (float64, error) {
	c, err := t.Character(character)
	if err != nil {
		return 0, err
	}
	key := character + "/" + string(talent) + "/" + strconv.Itoa(level)
	td, ok := c.Talents[talent]
	if !ok {
		return 0, model.NewNotFound("talent multiplier", key)
	}
	m, ok := td.Multipliers[level]
	if !ok {
		return 0, model.NewNotFound("talent multiplier", key)
	}
	return m, nil
}

// Reaction looks up the directed rule for (aura, trigger).
func (t *Tables) Reaction(aura, trigger model.Element) (model.ReactionRule, bool) {
	r, ok := t.reactionIndex[aura][trigger]
	return r, ok
}

// ReactionsNamed returns the rules whose name matches, in table order.
func (t *Tables) ReactionsNamed(name string) []model.ReactionRule {
	key := model.NormalizeName(name)
	var out []model.ReactionRule
	for _, r := range t.Reactions {
		if r.Name == key {
			out = append(out, r)
		}
	}
	return out
}

// ReactionLevelMultiplier returns the transformative level multiplier.
func (t *Tables) ReactionLevelMultiplier(level int) (float64, error) {
	m, ok := t.ReactionLevels[level]
	if !ok {
		return 0, model.NewNotFound("reaction level", strconv.Itoa(level))
	}
	return m, nil
}

// ReliableBonus returns the applicator bonus for a character (0 if absent).
func (t *Tables) ReliableBonus(character string) int {
	return t.ReliableApplicators[model.NormalizeName(character)]
}

// CharacterNames returns table character names in lexical order.
func (t *Tables) CharacterNames() []string {
	return slices.Sorted(maps.Keys(t.Characters))
}

// Init indexes and validates a table set assembled in code (tests, tools).
func (t *Tables) Init() error {
	if err := t.prepare(); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.digest == 0 {
		raw, err := yaml.Marshal(t)
		if err != nil {
			return fmt.Errorf("%w: encoding tables: %w", model.ErrConfiguration, err)
		}
		t.digest = xxhash.Sum64(raw)
	}
	return nil
}

// Namespace identifies the table content for caches: the version plus a
// content hash, so edited tables that keep their version string never
// share entries with the old ones.
func (t *Tables) Namespace() string {
	return fmt.Sprintf("%s-%016x", t.Version, t.digest)
}

// prepare normalizes keys and builds indexes. Called by the loaders.
func (t *Tables) prepare() error {
	chars := make(map[string]CharacterData, len(t.Characters))
	for name, c := range t.Characters {
		chars[model.NormalizeName(name)] = c
	}
	t.Characters = chars

	buffs := make(map[string][]SupportBuff, len(t.SupportBuffs))
	for name, b := range t.SupportBuffs {
		buffs[model.NormalizeName(name)] = b
	}
	t.SupportBuffs = buffs

	reliable := make(map[string]int, len(t.ReliableApplicators))
	for name, v := range t.ReliableApplicators {
		reliable[model.NormalizeName(name)] = v
	}
	t.ReliableApplicators = reliable

	sets := make(map[string][]SetBonus, len(t.ArtifactSets))
	for name, b := range t.ArtifactSets {
		sets[model.NormalizeName(name)] = b
	}
	t.ArtifactSets = sets

	t.reactionIndex = make(map[model.Element]map[model.Element]model.ReactionRule)
	for i := range t.Reactions {
		r := &t.Reactions[i]
		r.Name = model.NormalizeName(r.Name)
		if t.reactionIndex[r.Aura] == nil {
			t.reactionIndex[r.Aura] = make(map[model.Element]model.ReactionRule)
		}
		if _, dup := t.reactionIndex[r.Aura][r.Trigger]; dup {
			return model.Configurationf("duplicate reaction rule %s->%s", r.Aura, r.Trigger)
		}
		t.reactionIndex[r.Aura][r.Trigger] = *r
	}
	return nil
}

// Validate fails with ErrConfiguration when a required table is missing,
// empty or inconsistent. A failing table set must not start the engine.
func (t *Tables) Validate() error {
	switch {
	case len(t.Characters) == 0:
		return model.Configurationf("characters table is empty")
	case len(t.Reactions) == 0:
		return model.Configurationf("reactions table is empty")
	case len(t.ReactionLevels) == 0:
		return model.Configurationf("reaction_levels table is empty")
	case len(t.Resonances) == 0:
		return model.Configurationf("resonances table is empty")
	case len(t.Quality.Tiers) == 0:
		return model.Configurationf("quality tiers are empty")
	}

	for _, name := range t.CharacterNames() {
		c := t.Characters[name]
		if !c.Element.IsVision() {
			return model.Configurationf("character %q has invalid element %q", name, c.Element)
		}
		for kind, td := range c.Talents {
			if _, err := model.ParseTalentKind(string(kind)); err != nil {
				return fmt.Errorf("%w: character %q: %w", model.ErrConfiguration, name, err)
			}
			if !td.Scaling.Valid() {
				return model.Configurationf("character %q talent %s has invalid scaling %q", name, kind, td.Scaling)
			}
			if len(td.Multipliers) == 0 {
				return model.Configurationf("character %q talent %s has no multipliers", name, kind)
			}
		}
	}

	for _, r := range t.Reactions {
		if !r.Aura.IsVision() || !r.Trigger.IsVision() {
			return model.Configurationf("reaction %q has invalid elements %s->%s", r.Name, r.Aura, r.Trigger)
		}
		if !r.Category.Valid() {
			return model.Configurationf("reaction %q has invalid category %q", r.Name, r.Category)
		}
		if r.Category == model.Amplifying && r.BaseMultiplier <= 0 {
			return model.Configurationf("amplifying reaction %q needs a base multiplier", r.Name)
		}
	}

	for e, res := range t.Resonances {
		if !e.IsVision() {
			return model.Configurationf("resonance for invalid element %q", e)
		}
		if res.Threshold < 1 {
			return model.Configurationf("resonance %q has threshold %d", res.Name, res.Threshold)
		}
	}

	for name, bonuses := range t.ArtifactSets {
		for _, b := range bonuses {
			if b.Pieces < 1 || b.Pieces > 5 {
				return model.Configurationf("artifact set %q has a %d-piece bonus", name, b.Pieces)
			}
		}
		if !slices.IsSortedFunc(bonuses, func(a, b SetBonus) int { return a.Pieces - b.Pieces }) {
			return model.Configurationf("artifact set %q bonuses must be sorted by pieces", name)
		}
	}

	if !slices.IsSortedFunc(t.Quality.Tiers, func(a, b Tier) int {
		return cmpFloat(a.MinCritValue, b.MinCritValue)
	}) {
		return model.Configurationf("quality tiers must be sorted by min_crit_value")
	}
	if t.Quality.OptimalRatio <= 0 || t.Quality.RatioTolerance < 0 {
		return model.Configurationf("quality ratio settings out of range")
	}
	return nil
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
