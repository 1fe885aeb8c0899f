package models

import "strings"

// Ayanamsa selects the sidereal correction applied by the ephemeris.
type Ayanamsa string

const (
	Lahiri       Ayanamsa = "LAHIRI"
	Raman        Ayanamsa = "RAMAN"
	Krishnamurti Ayanamsa = "KRISHNAMURTI"

	DefaultAyanamsa = Lahiri
)

// ParseAyanamsa resolves a selector. Unknown values resolve to the default
// with ok=false; an empty selector is the default with ok=true.
func ParseAyanamsa(s string) (Ayanamsa, bool) {
	switch a := Ayanamsa(strings.ToUpper(strings.TrimSpace(s))); a {
	case "":
		return DefaultAyanamsa, true
	case Lahiri, Raman, Krishnamurti:
		return a, true
	default:
		return DefaultAyanamsa, false
	}
}
