package data

import (
	"testing"

	"github.com/udisondev/dmgcalc/internal/model"
)

// --- Table loading benchmarks ---

// BenchmarkParseTables benchmarks decoding, indexing and validating the embedded tables.
// Expected: ~1-3ms (YAML decode dominates; startup-only path).
func BenchmarkParseTables(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		if _, err := ParseTables(defaultTablesYAML); err != nil {
			b.Fatalf("ParseTables: %v", err)
		}
	}
}

// --- Lookup benchmarks (hot path: every damage evaluation) ---

// BenchmarkTalentMultiplier benchmarks the per-evaluation multiplier lookup.
// Expected: ~100ns (name normalization + two map lookups).
func BenchmarkTalentMultiplier(b *testing.B) {
	t, err := DefaultTables()
	if err != nil {
		b.Fatalf("DefaultTables: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if _, err := t.TalentMultiplier("hu tao", model.ElementalSkill, 9); err != nil {
			b.Fatalf("TalentMultiplier: %v", err)
		}
	}
}

// BenchmarkReaction benchmarks the directed (aura, trigger) rule lookup.
// Expected: ~10ns (pre-built index, no allocation).
func BenchmarkReaction(b *testing.B) {
	t, err := DefaultTables()
	if err != nil {
		b.Fatalf("DefaultTables: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if _, ok := t.Reaction(model.Hydro, model.Pyro); !ok {
			b.Fatal("vaporize rule missing")
		}
	}
}
