package model

// DamageBreakdown is the result of one damage formula evaluation.
type DamageBreakdown struct {
	NonCrit float64 `yaml:"non_crit" json:"non_crit"`
	Crit    float64 `yaml:"crit" json:"crit"`
	Average float64 `yaml:"average" json:"average"`

	Reaction         string           `yaml:"reaction,omitempty" json:"reaction,omitempty"`
	ReactionCategory ReactionCategory `yaml:"reaction_category,omitempty" json:"reaction_category,omitempty"`
	// ReactionMultiplier is the amplifying multiplier (1.0 when none applied).
	ReactionMultiplier float64 `yaml:"reaction_multiplier,omitempty" json:"reaction_multiplier,omitempty"`
	// ReactionDamage is flat transformative damage; it never crits.
	ReactionDamage float64 `yaml:"reaction_damage,omitempty" json:"reaction_damage,omitempty"`
}

// TalentDamage groups the breakdowns computed for one talent.
type TalentDamage struct {
	Talent  TalentKind      `yaml:"talent" json:"talent"`
	Element Element         `yaml:"element" json:"element"`
	Base    DamageBreakdown `yaml:"base" json:"base"`
	Buffed  DamageBreakdown `yaml:"buffed" json:"buffed"`
	// Reaction is the buffed breakdown with the selected reaction applied.
	Reaction *DamageBreakdown `yaml:"reaction,omitempty" json:"reaction,omitempty"`
}
