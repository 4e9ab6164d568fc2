package model

// ReactionCategory groups reactions by how they contribute damage.
type ReactionCategory string

const (
	Amplifying     ReactionCategory = "amplifying"
	Transformative ReactionCategory = "transformative"
	Additive       ReactionCategory = "additive"
	NoCategory     ReactionCategory = "none"
)

// Priority orders categories for ranking ties; higher ranks first.
func (c ReactionCategory) Priority() int {
	switch c {
	case Amplifying:
		return 3
	case Transformative:
		return 2
	case Additive:
		return 1
	}
	return 0
}

// Valid reports whether c is a known category.
func (c ReactionCategory) Valid() bool {
	switch c {
	case Amplifying, Transformative, Additive, NoCategory:
		return true
	}
	return false
}

// ReactionRule is one directed (aura, trigger) entry of the reaction table.
type ReactionRule struct {
	Aura     Element          `yaml:"aura" json:"aura"`
	Trigger  Element          `yaml:"trigger" json:"trigger"`
	Name     string           `yaml:"name" json:"name"`
	Category ReactionCategory `yaml:"category" json:"category"`
	// BaseMultiplier applies to amplifying reactions (1.5 / 2.0).
	BaseMultiplier float64 `yaml:"base_multiplier,omitempty" json:"base_multiplier,omitempty"`
	// FlatMultiplier scales the level multiplier for transformative/additive reactions.
	FlatMultiplier float64 `yaml:"flat_multiplier,omitempty" json:"flat_multiplier,omitempty"`
	RequiresEM     bool    `yaml:"requires_em" json:"requires_em"`
}

// ReactionCandidate is a concrete (aura character, trigger character) pairing.
type ReactionCandidate struct {
	AuraCharacter    string       `yaml:"aura_character" json:"aura_character"`
	TriggerCharacter string       `yaml:"trigger_character" json:"trigger_character"`
	Rule             ReactionRule `yaml:"rule" json:"rule"`
	ViabilityScore   int          `yaml:"viability_score" json:"viability_score"`
}
