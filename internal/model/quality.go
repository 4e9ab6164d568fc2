package model

// BuildQualityReport summarizes crit investment of a stat block.
type BuildQualityReport struct {
	CritValue float64  `yaml:"crit_value" json:"crit_value"`
	CritRatio float64  `yaml:"crit_ratio" json:"crit_ratio"`
	Tier      string   `yaml:"tier" json:"tier"`
	Notes     []string `yaml:"notes,omitempty" json:"notes,omitempty"`
}
