package main

import (
	"slices"

	"github.com/spf13/cobra"
)

type tablesSummary struct {
	Version      string   `yaml:"version" json:"version"`
	Characters   []string `yaml:"characters" json:"characters"`
	Reactions    int      `yaml:"reactions" json:"reactions"`
	Resonances   int      `yaml:"resonances" json:"resonances"`
	ArtifactSets []string `yaml:"artifact_sets" json:"artifact_sets"`
	QualityTiers []string `yaml:"quality_tiers" json:"quality_tiers"`
}

func newTablesCmd(a *app) *cobra.Command {
	var (
		out  outputFlags
		dump bool
	)
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Validate and summarize the configured lookup tables",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := validateFormat(out.format); err != nil {
				return err
			}
			tables, err := a.loadTables()
			if err != nil {
				return err
			}
			if dump {
				return out.write(a.stdout, tables)
			}

			s := tablesSummary{
				Version:    tables.Version,
				Characters: tables.CharacterNames(),
				Reactions:  len(tables.Reactions),
				Resonances: len(tables.Resonances),
			}
			for name := range tables.ArtifactSets {
				s.ArtifactSets = append(s.ArtifactSets, name)
			}
			slices.Sort(s.ArtifactSets)
			for _, t := range tables.Quality.Tiers {
				s.QualityTiers = append(s.QualityTiers, t.Name)
			}
			return out.write(a.stdout, s)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the full tables instead of a summary")
	addOutputFlags(cmd.Flags(), &out)
	return cmd
}
