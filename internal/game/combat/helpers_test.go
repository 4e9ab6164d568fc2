package combat

import (
	"strconv"

	"github.com/udisondev/dmgcalc/internal/model"
)

// stubTables отдаёт фиксированные множители без загрузки YAML.
type stubTables struct {
	talents map[string]model.TalentInfo
	mults   map[string]float64
	levels  map[int]float64
}

func newStubTables() *stubTables {
	return &stubTables{
		talents: map[string]model.TalentInfo{
			"tester/elemental_skill": {Scaling: model.ScaleATK, Element: model.Pyro},
			"tester/normal_attack":   {Scaling: model.ScaleATK, Element: model.Physical},
			"sprout/elemental_skill": {Scaling: model.ScaleEM, Element: model.Dendro},
			"shield/elemental_burst": {Scaling: model.ScaleHP, Element: model.Hydro},
		},
		mults: map[string]float64{
			"tester/elemental_skill/10": 200,
			"tester/normal_attack/10":   100,
			"sprout/elemental_skill/10": 100,
			"shield/elemental_burst/10": 10,
		},
		levels: map[int]float64{90: 1446.85},
	}
}

func (s *stubTables) Talent(character string, talent model.TalentKind) (model.TalentInfo, error) {
	key := character + "/" + string(talent)
	info, ok := s.talents[key]
	if !ok {
		return model.TalentInfo{}, model.NewNotFound("talent", key)
	}
	return info, nil
}

func (s *stubTables) TalentMultiplier(character string, talent model.TalentKind, level int) (float64, error) {
	key := character + "/" + string(talent) + "/" + strconv.Itoa(level)
	m, ok := s.mults[key]
	if !ok {
		return 0, model.NewNotFound("talent multiplier", key)
	}
	return m, nil
}

func (s *stubTables) ReactionLevelMultiplier(level int) (float64, error) {
	m, ok := s.levels[level]
	if !ok {
		return 0, model.NewNotFound("reaction level", strconv.Itoa(level))
	}
	return m, nil
}

func newStubCalculator() *Calculator {
	tables := newStubTables()
	return NewCalculator(tables, tables)
}

// goldenInput: ATK 2847, CR 40, CD 236.1, 200%, enemy 90 / 10% RES, char lvl 90.
func goldenInput() Input {
	return Input{
		Character:      "tester",
		Talent:         model.ElementalSkill,
		TalentLevel:    10,
		CharacterLevel: 90,
		Stats: model.StatBlock{
			model.BaseATK:  2847,
			model.CritRate: 40,
			model.CritDMG:  236.1,
		},
		Enemy: Enemy{Level: 90, Resistance: 10},
	}
}

func withReaction(in Input, rule model.ReactionRule) Input {
	in.Reaction = &model.ReactionCandidate{
		AuraCharacter:    "aura",
		TriggerCharacter: in.Character,
		Rule:             rule,
	}
	return in
}
