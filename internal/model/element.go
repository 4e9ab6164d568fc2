package model

import "strings"

// Element is an elemental (or physical) damage type.
type Element string

const (
	Pyro     Element = "pyro"
	Hydro    Element = "hydro"
	Electro  Element = "electro"
	Cryo     Element = "cryo"
	Anemo    Element = "anemo"
	Geo      Element = "geo"
	Dendro   Element = "dendro"
	Physical Element = "physical"
)

// Elements lists every element in canonical order.
var Elements = []Element{Pyro, Hydro, Electro, Cryo, Anemo, Geo, Dendro, Physical}

// ParseElement converts a case-insensitive name into an Element.
func ParseElement(s string) (Element, error) {
	e := Element(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", Validationf("unknown element %q", s)
	}
	return e, nil
}

// Valid reports whether e is one of the known elements.
func (e Element) Valid() bool {
	switch e {
	case Pyro, Hydro, Electro, Cryo, Anemo, Geo, Dendro, Physical:
		return true
	}
	return false
}

// IsVision reports whether a character can carry e (everything but physical).
func (e Element) IsVision() bool {
	return e.Valid() && e != Physical
}

// DamageBonusStat returns the element-specific DMG% stat (pyro_dmg_bonus etc).
func (e Element) DamageBonusStat() Stat {
	if e == Physical {
		return PhysicalDMGBonus
	}
	return Stat(string(e) + "_dmg_bonus")
}

// ResShredStat returns the element-specific resistance reduction stat.
func (e Element) ResShredStat() Stat {
	return Stat(string(e) + "_res_shred")
}

func (e Element) String() string {
	return string(e)
}

// UnmarshalText normalizes element names coming from YAML/JSON.
func (e *Element) UnmarshalText(text []byte) error {
	parsed, err := ParseElement(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
