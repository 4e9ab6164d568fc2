package main

import (
	"github.com/spf13/cobra"

	"github.com/udisondev/dmgcalc/internal/engine"
	"github.com/udisondev/dmgcalc/internal/model"
)

func newQualityCmd(a *app) *cobra.Command {
	var (
		out               outputFlags
		critRate, critDMG float64
	)
	cmd := &cobra.Command{
		Use:     "quality",
		Short:   "Rate a build by crit value and crit ratio",
		Example: "  dmgcalc quality --crit-rate 70 --crit-dmg 180",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(out.format); err != nil {
				return err
			}
			// unset flags stay absent so the evaluator reports them missing
			stats := model.StatBlock{}
			if cmd.Flags().Changed("crit-rate") {
				stats[model.CritRate] = critRate
			}
			if cmd.Flags().Changed("crit-dmg") {
				stats[model.CritDMG] = critDMG
			}

			tables, err := a.loadTables()
			if err != nil {
				return err
			}
			e, err := engine.New(tables, engine.Options{})
			if err != nil {
				return err
			}
			report, err := e.Quality().Evaluate(stats)
			if err != nil {
				return err
			}
			return out.write(a.stdout, report)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&critRate, "crit-rate", 0, "Crit rate, percent")
	f.Float64Var(&critDMG, "crit-dmg", 0, "Crit damage, percent")
	addOutputFlags(f, &out)
	return cmd
}
