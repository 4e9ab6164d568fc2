package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/dmgcalc/internal/engine"
	"github.com/udisondev/dmgcalc/internal/game/reaction"
	"github.com/udisondev/dmgcalc/internal/model"
)

type reactionsOutput struct {
	Candidates  []model.ReactionCandidate `yaml:"candidates" json:"candidates"`
	Recommended []string                  `yaml:"recommended" json:"recommended"`
}

func newReactionsCmd(a *app) *cobra.Command {
	var (
		out     outputFlags
		members []string
		top     int
	)
	cmd := &cobra.Command{
		Use:   "reactions",
		Short: "Rank the elemental reactions a team can trigger",
		Example: `  dmgcalc reactions -m "Hu Tao=pyro" -m "Xingqiu=hydro" -m "Zhongli=geo"
  dmgcalc reactions -m Nahida=dendro -m Fischl=electro --top 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(out.format); err != nil {
				return err
			}
			team, err := parseMembers(members)
			if err != nil {
				return err
			}
			tables, err := a.loadTables()
			if err != nil {
				return err
			}
			e, err := engine.New(tables, engine.Options{})
			if err != nil {
				return err
			}

			ranked, err := e.Detector().Detect(team)
			if err != nil {
				return err
			}
			return out.write(a.stdout, reactionsOutput{
				Candidates:  ranked,
				Recommended: reaction.Recommended(ranked, top),
			})
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&members, "member", "m", nil, `Team member as "Name=element" (repeatable)`)
	f.IntVar(&top, "top", reaction.DefaultRecommended, "Number of recommended reactions")
	addOutputFlags(f, &out)
	return cmd
}

// parseMembers turns "Name=element" pairs into a team. The name may contain
// spaces or '='; the element follows the last '='.
func parseMembers(specs []string) (model.TeamComposition, error) {
	var team model.TeamComposition
	for _, s := range specs {
		i := strings.LastIndexByte(s, '=')
		if i <= 0 {
			return team, model.Validationf("member %q: want Name=element", s)
		}
		el, err := model.ParseElement(s[i+1:])
		if err != nil {
			return team, fmt.Errorf("member %q: %w", s, err)
		}
		team.Members = append(team.Members, model.Member{Name: strings.TrimSpace(s[:i]), Element: el})
	}
	return team, nil
}
