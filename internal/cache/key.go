// Package cache memoizes damage evaluations by a content hash of their input.
package cache

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/udisondev/dmgcalc/internal/game/combat"
)

// Key returns the content hash of a damage input within namespace.
// The namespace is the tables namespace (version plus content hash), so
// retuned tables never hit stale entries.
// JSON map keys are sorted, which makes the encoding canonical.
func Key(namespace string, in combat.Input) (string, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encoding damage input: %w", err)
	}
	d := xxhash.New()
	_, _ = d.WriteString(namespace)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(raw)
	return fmt.Sprintf("%016x", d.Sum64()), nil
}
