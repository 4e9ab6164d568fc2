package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/dmgcalc/internal/engine"
	"github.com/udisondev/dmgcalc/internal/model"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "analyze <request.yaml>",
		Short: "Analyze every build of a team against one enemy",
		Long: `Analyze reads a team request (team, enemy, optional reactions and one
build per analyzed character) and prints one report per build: damage per
talent with and without team buffs, the reaction applied, ranked reaction
candidates, team buffs, synergy and build quality.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(out.format); err != nil {
				return err
			}
			req, err := readTeamRequest(args[0])
			if err != nil {
				return err
			}

			tables, err := a.loadTables()
			if err != nil {
				return err
			}
			w, err := a.newWiring(cmd.Context(), tables)
			if err != nil {
				return err
			}
			defer w.close()

			reports, err := w.engine.AnalyzeTeam(cmd.Context(), req.Requests())
			if err != nil {
				return err
			}
			w.logCacheStats()
			return out.write(a.stdout, reports)
		},
	}
	addOutputFlags(cmd.Flags(), &out)
	return cmd
}

func readTeamRequest(path string) (engine.TeamRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return engine.TeamRequest{}, fmt.Errorf("opening request: %w", err)
	}
	defer f.Close()

	var req engine.TeamRequest
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, model.Validationf("request %s is empty", path)
		}
		return req, model.Validationf("parsing request %s: %v", path, err)
	}
	if len(req.Builds) == 0 {
		return req, model.Validationf("request %s has no builds", path)
	}
	return req, nil
}
