package models

import "time"

// BirthInput is the raw birth data a chart is computed from.
type BirthInput struct {
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	UTCOffset float64 `json:"timezone_offset"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Ayanamsa  string  `json:"ayanamsa"`
}

// EventAnalysis is the outcome of evaluating one life-event category.
type EventAnalysis struct {
	Event          string `json:"event"`
	RelevantHouses []int  `json:"relevant_houses"`
	DashaLord      Body   `json:"dasha_lord"`
	LordHouse      int    `json:"lord_house"`
	Favorable      bool   `json:"favorable"`
	Note           string `json:"note"`
}

// ChartReport is the full-chart aggregate.
type ChartReport struct {
	Ayanamsa   Ayanamsa          `json:"ayanamsa"`
	Chart      *Chart            `json:"chart"`
	Divisional []DivisionalChart `json:"divisional"`
	Dasha      *DashaTimeline    `json:"vimshottari"`
	Strength   StrengthTable     `json:"shadbala"`
	Aspects    AspectSet         `json:"aspects"`
	Yogas      []string          `json:"yogas"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// TransitSnapshot is the present-moment transit view for a location.
type TransitSnapshot struct {
	ComputedAt time.Time `json:"date_utc"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	Transits   *Transits `json:"transits"`
}

// TransitReport carries hits of present-moment transits against a natal chart.
type TransitReport struct {
	ComputedAt time.Time    `json:"date_utc"`
	NatalDate  string       `json:"natal_date"`
	Transits   *Transits    `json:"transits"`
	Hits       []TransitHit `json:"transit_hits"`
	TotalHits  int          `json:"total_hits"`
}

// EventReport wraps an event analysis with the context it was computed in.
type EventReport struct {
	EventType      string        `json:"event_type"`
	RelevantHouses []int         `json:"relevant_houses"`
	DashaLord      Body          `json:"current_dasha_lord"`
	Analysis       EventAnalysis `json:"analysis"`
}

// ChartComputed is the summary event published after a full chart.
type ChartComputed struct {
	RequestID     string     `json:"request_id,omitempty"`
	ComputedAt    time.Time  `json:"computed_at"`
	Birth         BirthInput `json:"birth"`
	Ayanamsa      Ayanamsa   `json:"ayanamsa"`
	AscendantSign Sign       `json:"ascendant_sign"`
	Nakshatra     string     `json:"nakshatra"`
	DashaRuler    Body       `json:"dasha_ruler"`
	Yogas         []string   `json:"yogas"`
}

// ComputationRecord is one archived audit row.
type ComputationRecord struct {
	Time          time.Time
	Operation     string
	BirthDate     string
	BirthTime     string
	UTCOffset     float64
	Latitude      float64
	Longitude     float64
	Ayanamsa      Ayanamsa
	AscendantSign Sign
	Nakshatra     string
	DashaRuler    Body
	Duration      time.Duration
}
