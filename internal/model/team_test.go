package model

import (
	"errors"
	"testing"
)

func TestTeamComposition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		team    TeamComposition
		wantErr bool
	}{
		{"single member", TeamComposition{Members: []Member{{"Hu Tao", Pyro}}}, false},
		{"full team with main dps", TeamComposition{
			Members: []Member{{"Hu Tao", Pyro}, {"Xingqiu", Hydro}, {"Bennett", Pyro}, {"Zhongli", Geo}},
			MainDPS: "hu  tao",
		}, false},
		{"empty", TeamComposition{}, true},
		{"five members", TeamComposition{Members: []Member{
			{"A", Pyro}, {"B", Hydro}, {"C", Cryo}, {"D", Geo}, {"E", Anemo},
		}}, true},
		{"duplicate after normalization", TeamComposition{Members: []Member{{"Hu Tao", Pyro}, {"HU TAO ", Pyro}}}, true},
		{"blank name", TeamComposition{Members: []Member{{"  ", Pyro}}}, true},
		{"physical member", TeamComposition{Members: []Member{{"Razor", Physical}}}, true},
		{"unknown element", TeamComposition{Members: []Member{{"Razor", Element("plasma")}}}, true},
		{"main dps outside team", TeamComposition{Members: []Member{{"Hu Tao", Pyro}}, MainDPS: "Diluc"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.team.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestTeamComposition_Lookups(t *testing.T) {
	team := TeamComposition{
		Members: []Member{{"Hu Tao", Pyro}, {"Xingqiu", Hydro}, {"Bennett", Pyro}},
		MainDPS: "Hu Tao",
	}

	if !team.IsMainDPS("hu tao") {
		t.Error("IsMainDPS(hu tao) = false, want true")
	}
	if team.IsMainDPS("Bennett") {
		t.Error("IsMainDPS(Bennett) = true, want false")
	}
	if (TeamComposition{Members: team.Members}).IsMainDPS("") {
		t.Error("IsMainDPS with no main DPS = true, want false")
	}

	m, ok := team.Member("  XINGQIU")
	if !ok || m.Element != Hydro {
		t.Errorf("Member(XINGQIU) = %v, %v; want hydro member", m, ok)
	}
	if _, ok := team.Member("Diluc"); ok {
		t.Error("Member(Diluc) found, want absent")
	}

	counts := team.ElementCounts()
	if counts[Pyro] != 2 || counts[Hydro] != 1 || len(counts) != 2 {
		t.Errorf("ElementCounts() = %v", counts)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"Hu Tao":            "hu tao",
		"  Raiden   Shogun": "raiden shogun",
		"":                  "",
	}
	for in, want := range tests {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
