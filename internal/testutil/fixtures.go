package testutil

import "github.com/udisondev/dmgcalc/internal/model"

// VaporizeTeam — классическая команда Hu Tao с Xingqiu, Bennett и Zhongli.
func VaporizeTeam() model.TeamComposition {
	return model.TeamComposition{
		Members: []model.Member{
			{Name: "Hu Tao", Element: model.Pyro},
			{Name: "Xingqiu", Element: model.Hydro},
			{Name: "Bennett", Element: model.Pyro},
			{Name: "Zhongli", Element: model.Geo},
		},
		MainDPS: "Hu Tao",
	}
}

// HuTaoBaseStats — базовые статы lvl 90 без экипировки.
func HuTaoBaseStats() model.StatBlock {
	return model.StatBlock{
		model.BaseATK:  900,
		model.BaseHP:   15552,
		model.BaseDEF:  876,
		model.CritRate: 5,
		model.CritDMG:  88.4,
	}
}

// HuTaoEquipment — оружие и артефакты одним набором блоков.
func HuTaoEquipment() []model.StatBlock {
	return []model.StatBlock{
		{model.CritRate: 60, model.CritDMG: 120},
		{model.ATKPercent: 20, model.ElementalMastery: 100},
	}
}

// CrimsonWitch4pc — четыре части Crimson Witch плюс офф-сет.
func CrimsonWitch4pc() []string {
	return []string{
		"Crimson Witch of Flames", "Crimson Witch of Flames",
		"Crimson Witch of Flames", "Crimson Witch of Flames", "",
	}
}
