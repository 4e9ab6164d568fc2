package model

import "strings"

// MaxTeamSize is the number of character slots in a party.
const MaxTeamSize = 4

// Member is a single team slot.
type Member struct {
	Name    string  `yaml:"name" json:"name"`
	Element Element `yaml:"element" json:"element"`
}

// TeamComposition is an ordered party with an optional main DPS.
type TeamComposition struct {
	Members []Member `yaml:"members" json:"members"`
	MainDPS string   `yaml:"main_dps,omitempty" json:"main_dps,omitempty"`
}

// NormalizeName canonicalizes a character name for table lookups.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Validate checks slot count, duplicate characters, elements and main DPS.
func (t TeamComposition) Validate() error {
	if len(t.Members) == 0 || len(t.Members) > MaxTeamSize {
		return Validationf("team must have 1-%d members, got %d", MaxTeamSize, len(t.Members))
	}
	seen := make(map[string]struct{}, len(t.Members))
	for i, m := range t.Members {
		name := NormalizeName(m.Name)
		if name == "" {
			return Validationf("member %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return Validationf("duplicate character %q in team", m.Name)
		}
		seen[name] = struct{}{}
		if !m.Element.IsVision() {
			return Validationf("character %q has invalid element %q", m.Name, m.Element)
		}
	}
	if t.MainDPS != "" {
		if _, ok := seen[NormalizeName(t.MainDPS)]; !ok {
			return Validationf("main DPS %q is not in the team", t.MainDPS)
		}
	}
	return nil
}

// IsMainDPS reports whether name is the configured main DPS.
func (t TeamComposition) IsMainDPS(name string) bool {
	return t.MainDPS != "" && NormalizeName(t.MainDPS) == NormalizeName(name)
}

// Member returns the slot for name.
func (t TeamComposition) Member(name string) (Member, bool) {
	key := NormalizeName(name)
	for _, m := range t.Members {
		if NormalizeName(m.Name) == key {
			return m, true
		}
	}
	return Member{}, false
}

// ElementCounts counts members per element.
func (t TeamComposition) ElementCounts() map[Element]int {
	counts := make(map[Element]int, len(t.Members))
	for _, m := range t.Members {
		counts[m.Element]++
	}
	return counts
}
