package models

// AspectKind labels a Western angular aspect.
type AspectKind string

const (
	Conjunction AspectKind = "Conjunction"
	Sextile     AspectKind = "Sextile"
	Square      AspectKind = "Square"
	Trine       AspectKind = "Trine"
	Opposition  AspectKind = "Opposition"
)

// VedicAspects maps a body to the whole signs it aspects.
type VedicAspects map[Body][]Sign

// WesternAspect is one angular aspect between two bodies.
type WesternAspect struct {
	Body1      Body       `json:"planet1"`
	Body2      Body       `json:"planet2"`
	Aspect     AspectKind `json:"aspect"`
	Orb        float64    `json:"orb"`
	ExactAngle float64    `json:"exact_angle"`
}

// AspectSet bundles both aspect systems for one chart.
type AspectSet struct {
	Vedic   VedicAspects    `json:"vedic"`
	Western []WesternAspect `json:"western"`
}

// DivisionalChart maps every chart body to its sign under division D.
type DivisionalChart struct {
	Division int           `json:"division"`
	Signs    map[Body]Sign `json:"signs"`
}

// TransitHit is a transiting body within orb of a natal body.
type TransitHit struct {
	TransitBody Body       `json:"transit_planet"`
	NatalBody   Body       `json:"natal_planet"`
	Aspect      AspectKind `json:"aspect"`
	Orb         float64    `json:"orb"`
	Exact       bool       `json:"exact"`
}
