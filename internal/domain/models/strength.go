package models

import "math"

// StrengthReference is the fixed denominator of the strength percentage.
const StrengthReference = 390.0

// Avastha is the age state of a planet by degree within its sign.
type Avastha string

const (
	AvasthaBala    Avastha = "Bala (infant)"
	AvasthaKumara  Avastha = "Kumara (youth)"
	AvasthaYuva    Avastha = "Yuva (young adult)"
	AvasthaVriddha Avastha = "Vriddha (old)"
	AvasthaMrita   Avastha = "Mrita (dead)"
)

// AvasthaOf buckets a longitude's degree-in-sign into five 6 degree bands.
func AvasthaOf(lon float64) Avastha {
	switch deg := math.Mod(NormalizeLongitude(lon), 30); {
	case deg < 6:
		return AvasthaBala
	case deg < 12:
		return AvasthaKumara
	case deg < 18:
		return AvasthaYuva
	case deg < 24:
		return AvasthaVriddha
	default:
		return AvasthaMrita
	}
}

// StrengthScore is the simplified six-factor strength of one planet.
type StrengthScore struct {
	Sthana     float64 `json:"sthana_bala"`
	Dig        float64 `json:"dig_bala"`
	Kala       float64 `json:"kala_bala"`
	Cheshta    float64 `json:"cheshta_bala"`
	Naisargika float64 `json:"naisargika_bala"`
	Drik       float64 `json:"drik_bala"`
	Total      float64 `json:"total_bala"`
	Percentage float64 `json:"strength_percentage"`
	Avastha    Avastha `json:"avastha"`
}

// StrengthTable maps each classical planet to its score.
type StrengthTable map[Body]StrengthScore
