package models

// Requests for chart HTTP endpoints and the chart request topic.

type ChartRequest struct {
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string  `json:"time" validate:"required,clock"`
	TimezoneOffset *float64 `json:"timezone_offset" validate:"required,gte=-14,lte=14"`
	Lat            *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon            *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
	Ayanamsa       string   `json:"ayanamsa" default:"LAHIRI"`
}

// Birth converts the request into engine input. Absent coordinates or
// offset fail with an InputError; zero is a valid value for each.
func (r ChartRequest) Birth() (BirthInput, error) {
	for _, f := range []struct {
		name string
		v    *float64
	}{{"timezone_offset", r.TimezoneOffset}, {"lat", r.Lat}, {"lon", r.Lon}} {
		if f.v == nil {
			return BirthInput{}, NewInputError(f.name, "", "is required")
		}
	}
	return BirthInput{
		Date:      r.Date,
		Time:      r.Time,
		UTCOffset: *r.TimezoneOffset,
		Latitude:  *r.Lat,
		Longitude: *r.Lon,
		Ayanamsa:  r.Ayanamsa,
	}, nil
}

type TransitRequest struct {
	Lat *float64 `query:"lat" json:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `query:"lon" json:"lon" validate:"required,gte=-180,lte=180"`
	At  string   `query:"at" json:"at"`
}

// TransitHitsRequest leaves Orb nil when absent, so the configured
// default applies while an explicit 0 is kept.
type TransitHitsRequest struct {
	ChartRequest
	Orb *float64 `query:"orb" json:"orb" validate:"omitempty,gte=0,lte=30"`
}

type EventRequest struct {
	ChartRequest
	EventType string `query:"event_type" json:"event_type" validate:"required"`
}

// ChartRequestMessage is a chart request consumed from the requests topic.
type ChartRequestMessage struct {
	RequestID string       `json:"request_id"`
	Chart     ChartRequest `json:"chart"`
}

// ChartResultMessage is published to the results topic.
type ChartResultMessage struct {
	RequestID string       `json:"request_id"`
	Report    *ChartReport `json:"report,omitempty"`
	Error     string       `json:"error,omitempty"`
}
