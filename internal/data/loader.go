package data

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/dmgcalc/internal/model"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// DefaultTables parses the embedded table set.
func DefaultTables() (*Tables, error) {
	t, err := ParseTables(defaultTablesYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded tables: %w", err)
	}
	return t, nil
}

// LoadTables reads a table set from a YAML file.
// An empty path falls back to the embedded defaults.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables %s: %w", path, err)
	}
	t, err := ParseTables(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing tables %s: %w", path, err)
	}
	return t, nil
}

// ParseTables decodes, indexes and validates a table set.
func ParseTables(raw []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrConfiguration, err)
	}
	t.digest = xxhash.Sum64(raw)
	if err := t.Init(); err != nil {
		return nil, err
	}

	slog.Info("loaded damage tables",
		"version", t.Version,
		"namespace", t.Namespace(),
		"characters", len(t.Characters),
		"reactions", len(t.Reactions),
		"resonances", len(t.Resonances),
		"artifact_sets", len(t.ArtifactSets))
	return &t, nil
}
