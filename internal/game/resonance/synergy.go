package resonance

import (
	"strings"

	"github.com/udisondev/dmgcalc/internal/model"
)

// Synergy score weights. The score is clamped to [0, MaxSynergy].
const (
	SynergyBase        = 50
	SynergyRainbow     = 15 // four distinct elements
	SynergyDualElement = 10 // exactly two distinct elements
	SynergyPerBuff     = 3
	SynergyBuffCap     = 25
	SynergyPerRole     = 3
	MaxSynergy         = 100
)

// Role is a support function a buff covers.
type Role string

const (
	RoleAttack    Role = "attack"
	RoleDefensive Role = "defensive"
	RoleElemental Role = "elemental"
)

// RoleOf classifies a buffed stat. ok is false when the stat fills no role.
func RoleOf(s model.Stat) (Role, bool) {
	name := string(s)
	switch {
	case strings.Contains(name, "atk"):
		return RoleAttack, true
	case strings.Contains(name, "shield"), strings.Contains(name, "healing"):
		return RoleDefensive, true
	case strings.Contains(name, "elemental"):
		return RoleElemental, true
	}
	return "", false
}

// SynergyScore rates a team 0..100 from element diversity, buff count and
// covered support roles.
func SynergyScore(team model.TeamComposition, applied []AppliedBuff) int {
	score := SynergyBase

	switch len(team.ElementCounts()) {
	case 4:
		score += SynergyRainbow
	case 2:
		score += SynergyDualElement
	}

	score += min(len(applied)*SynergyPerBuff, SynergyBuffCap)

	roles := make(map[Role]struct{}, 3)
	for _, a := range applied {
		if r, ok := RoleOf(a.Stat); ok {
			roles[r] = struct{}{}
		}
	}
	score += len(roles) * SynergyPerRole

	return min(score, MaxSynergy)
}
